// Package batch expands multi-file requests into per-file plans and runs
// them sequentially, isolating failures so one bad file never aborts the
// rest of the run.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectSources expands args into a sorted, deduplicated list of files.
// Each arg may be a literal file, a directory (its files, or the whole tree
// with recursive), or a glob pattern including "**". The arg "-" reads
// newline-separated paths from stdin.
func CollectSources(args []string, recursive bool, stdin io.Reader) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, arg := range args {
		if arg == "-" {
			if err := readStdinPaths(stdin, add); err != nil {
				return nil, err
			}
			continue
		}

		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			if err := collectDir(arg, recursive, add); err != nil {
				return nil, err
			}
		case err == nil:
			add(filepath.Clean(arg))
		default:
			if err := collectGlob(arg, add); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(out)
	return out, nil
}

func readStdinPaths(stdin io.Reader, add func(string)) error {
	if stdin == nil {
		return fmt.Errorf("no stdin available for '-' argument")
	}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		add(filepath.Clean(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading paths from stdin: %w", err)
	}
	return nil
}

func collectDir(dir string, recursive bool, add func(string)) error {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				add(filepath.Join(dir, entry.Name()))
			}
		}
		return nil
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return nil
}

func collectGlob(pattern string, add func(string)) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %q", pattern)
	}
	for _, match := range matches {
		info, err := os.Stat(match)
		if err == nil && info.Mode().IsRegular() {
			add(match)
		}
	}
	return nil
}
