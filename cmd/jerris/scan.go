package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/coffee-is-power/jerris/classfile"
	"github.com/coffee-is-power/jerris/classpath"
)

var (
	scanWorkers int
)

var scanCmd = &cobra.Command{
	Use:   "scan [directory]...",
	Short: "Scan directories for class files",
	Long: `Walk one or more directories, parse every class file found and
report a summary line per class.

With no arguments the roots come from JERRIS_CLASSPATH, falling back
to the working directory.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "j", runtime.NumCPU(), "number of parser goroutines")
}

type scanResult struct {
	path    string
	name    string
	version string
	err     error
}

func runScan(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = classpath.Split(os.Getenv("JERRIS_CLASSPATH")).Roots()
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var paths []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".class") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	workers := scanWorkers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	resultCh := make(chan scanResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				resultCh <- scanFile(path)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()
	go func() {
		for _, path := range paths {
			jobs <- path
		}
		close(jobs)
	}()

	results := make([]scanResult, 0, len(paths))
	for res := range resultCh {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	fmt.Fprintf(output, "%-6s %-8s %-32s %s\n", "STATUS", "VERSION", "NAME", "FILE")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 90))

	failed := 0
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(output, "%-6s %-8s %-32s %s\n", "fail", "-", "-", res.path)
			fmt.Fprintf(output, "       %v\n", res.err)
			failed++
			continue
		}
		fmt.Fprintf(output, "%-6s %-8s %-32s %s\n", "ok", res.version, res.name, res.path)
	}

	fmt.Fprintf(output, "\nScanned: %d classes (%d ok, %d failed)\n", len(results), len(results)-failed, failed)
	return nil
}

func scanFile(path string) scanResult {
	res := scanResult{path: path}

	c, err := classfile.Open(path)
	if err != nil {
		res.err = err
		return res
	}

	res.version = c.Version.String()
	res.name, err = c.Name()
	if err != nil {
		res.name = fmt.Sprintf("#%d", c.ThisClass)
	}
	return res
}
