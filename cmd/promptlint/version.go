// In file: cmd/promptlint/version.go
package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	pversion "github.com/dileep-u-k/prompt-optimizer/internal/version"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and analyzer versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "promptlint %s (commit %s, built %s)\n", version, gitCommit, buildDate)
			fmt.Fprintf(out, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "analyzer %s\n", pversion.Fingerprint())
		},
	}
}
