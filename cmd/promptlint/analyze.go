// In file: cmd/promptlint/analyze.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var (
	errBelowMinScore = errors.New("prompts scored below the minimum")
	errUnreadable    = errors.New("some inputs could not be read")
)

type analyzeOptions struct {
	glob        string
	concurrency int
	format      string
	minScore    int
}

// fileReport is the outcome for one input. Exactly one of Result and Error
// is set.
type fileReport struct {
	Path   string           `json:"path"`
	Result *analyzer.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze prompt files, directories or stdin ('-')",
		Example: `  promptlint analyze prompts/
  promptlint analyze --glob 'prompts/**/*.prompt' --min-score 60
  echo "write a poem" | promptlint analyze - --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.glob, "glob", "", "doublestar pattern selecting prompt files, e.g. 'prompts/**/*.md'")
	flags.IntVar(&opts.concurrency, "concurrency", runtime.NumCPU(), "number of files analyzed in parallel")
	flags.StringVar(&opts.format, "format", formatText, "output format: text or json")
	flags.IntVar(&opts.minScore, "min-score", 0, "fail when any prompt scores below this value")
	return cmd
}

func runAnalyze(in io.Reader, out io.Writer, args []string, opts analyzeOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q: use %s or %s", opts.format, formatText, formatJSON)
	}

	paths, err := discover(args, opts.glob)
	if err != nil {
		return err
	}
	log.Debugf("analyzing %d inputs with %d workers", len(paths), opts.concurrency)

	reports := analyzeAll(paths, in, opts.concurrency)

	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	default:
		writeText(out, reports, opts.minScore)
	}

	return summarize(reports, opts.minScore)
}

// analyzeAll runs the analyzer over paths with a bounded worker pool. Reports
// come back in input order.
func analyzeAll(paths []string, in io.Reader, concurrency int) []fileReport {
	if concurrency < 1 {
		concurrency = 1
	}
	reports := make([]fileReport, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(concurrency, len(paths)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = analyzePath(paths[i], in)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return reports
}

// analyzePath reads one input. Only one path can be stdin because discover
// deduplicates.
func analyzePath(path string, in io.Reader) fileReport {
	var (
		raw []byte
		err error
	)
	if path == stdinPath {
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		log.Warnf("⚠️ Skipping %s: %v", path, err)
		return fileReport{Path: path, Error: err.Error()}
	}
	return fileReport{Path: path, Result: analyzer.Analyze(string(raw))}
}

func writeText(out io.Writer, reports []fileReport, minScore int) {
	for _, r := range reports {
		if r.Result == nil {
			fmt.Fprintf(out, "%s: error: %s\n", r.Path, r.Error)
			continue
		}
		res := r.Result
		marker := ""
		if minScore > 0 && res.Score < minScore {
			marker = "  [below minimum]"
		}
		fmt.Fprintf(out, "%s: score %d/100 (%s, %s)%s\n", r.Path, res.Score, res.Complexity, res.Sentiment, marker)
		fmt.Fprintf(out, "  specificity %d, clarity %d, context %d\n", res.Specificity, res.Clarity, res.ContextScore)
		if len(res.MissingElements) > 0 {
			fmt.Fprintf(out, "  missing: %s\n", strings.Join(res.MissingElements, ", "))
		}
		if len(res.TemplateSuggestions) > 0 {
			fmt.Fprintf(out, "  templates: %s\n", strings.Join(res.TemplateSuggestions, ", "))
		}
		for _, s := range res.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
}

// summarize turns the reports into the command's error, if any. Unreadable
// inputs take precedence over low scores.
func summarize(reports []fileReport, minScore int) error {
	var unreadable, below int
	for _, r := range reports {
		switch {
		case r.Result == nil:
			unreadable++
		case minScore > 0 && r.Result.Score < minScore:
			below++
		}
	}
	if unreadable > 0 {
		return fmt.Errorf("%w: %d of %d", errUnreadable, unreadable, len(reports))
	}
	if below > 0 {
		return fmt.Errorf("%w: %d of %d below %d", errBelowMinScore, below, len(reports), minScore)
	}
	return nil
}
