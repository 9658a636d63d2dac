// In file: cmd/promptlint/discover.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// stdinPath stands for standard input in the path list.
const stdinPath = "-"

var errNoInputs = errors.New("no prompt files given: pass paths, '-' for stdin, or --glob")

// promptExtensions are the file types picked up when walking a directory.
var promptExtensions = map[string]bool{
	".txt":    true,
	".md":     true,
	".prompt": true,
}

// discover expands args and the optional doublestar pattern into an ordered,
// deduplicated list of inputs. Explicit files are kept whatever their
// extension; directories contribute only prompt files.
func discover(args []string, pattern string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := path
		if path != stdinPath {
			if abs, err := filepath.Abs(path); err == nil {
				key = abs
			}
		}
		if !seen[key] {
			seen[key] = true
			inputs = append(inputs, path)
		}
	}

	for _, arg := range args {
		if arg == stdinPath {
			add(stdinPath)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := walkPromptFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}

	if pattern != "" {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	if len(inputs) == 0 {
		return nil, errNoInputs
	}
	return inputs, nil
}

// walkPromptFiles returns the prompt files under dir in lexical order.
func walkPromptFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && promptExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}
