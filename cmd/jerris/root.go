package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coffee-is-power/jerris/classfile"
	"github.com/coffee-is-power/jerris/classpath"
)

var (
	outputFile string
	output     io.Writer
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "jerris",
	Short: "Java class file viewer and analyzer",
	Long: `jerris is a command-line tool for viewing and analyzing
compiled Java class files.

It can display the constant pool, fields, methods, and attributes
stored in class files, and validate constant pool cross-references.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		if verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			classpath.SetLogger(logger)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(browseCmd)
}

var (
	loader     *classpath.Loader
	loaderOnce sync.Once
	loaderErr  error
)

// classLoader builds the shared loader over JERRIS_CLASSPATH, falling
// back to the working directory.
func classLoader() (*classpath.Loader, error) {
	loaderOnce.Do(func() {
		path := classpath.Split(os.Getenv("JERRIS_CLASSPATH"))
		if len(path.Roots()) == 0 {
			path = classpath.New(".")
		}
		loader, loaderErr = classpath.NewLoader(path, 0)
	})
	return loader, loaderErr
}

// openClass resolves a command argument to a parsed class. A path to
// an existing file is read directly; anything else is treated as a
// class name and looked up on the class path.
func openClass(arg string) (*classfile.Class, error) {
	if _, err := os.Stat(arg); err == nil {
		return classfile.Open(arg)
	}
	l, err := classLoader()
	if err != nil {
		return nil, err
	}
	return l.Load(arg)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
