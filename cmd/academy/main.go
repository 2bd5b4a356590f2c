// Package main implements the academy CLI tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "academy",
	Short:         "Academy - track course progress against a catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	rootCatalogPath string
	rootStateDir    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCatalogPath, "catalog", "", "Catalog file (toml, yaml or json)")
	rootCmd.PersistentFlags().StringVar(&rootStateDir, "state-dir", "", "Directory holding progress.json")
}

// printError reports err the way cobra would. An exitError without a cause
// has already told the user what went wrong and prints nothing.
func printError(w io.Writer, err error) {
	var exitErr *exitError
	if errors.As(err, &exitErr) && exitErr.err == nil {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// exitError carries a process exit code, optionally wrapping the error that
// caused it.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func (e *exitError) ExitCode() int { return e.code }
