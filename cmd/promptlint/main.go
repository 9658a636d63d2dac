// In file: cmd/promptlint/main.go

// Command promptlint scores prompt files from the command line with the same
// analyzer the HTTP service uses.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	exitBelowMinScore = 1
	exitError         = 2
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "promptlint",
		Short:         "Score prompts for clarity, specificity and context",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.SetIn(in)
	root.SetOut(out)

	root.AddCommand(newAnalyzeCmd(), newVersionCmd())
	return root
}

// exitCode prints err and maps it to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, errBelowMinScore) {
		fmt.Fprintln(os.Stderr, err)
		return exitBelowMinScore
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitError
}
