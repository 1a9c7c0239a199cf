package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <class>...",
	Short: "Validate class file structure and constant pool references",
	Long: `Parse one or more class files and report whether each is
structurally sound, including constant pool cross-reference checks.

The exit status is non-zero if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, classPath := range args {
		if _, err := openClass(classPath); err != nil {
			fmt.Fprintf(output, "%s: %v\n", classPath, err)
			failed++
			continue
		}
		fmt.Fprintf(output, "%s: ok\n", classPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d classes failed validation", failed, len(args))
	}
	return nil
}
