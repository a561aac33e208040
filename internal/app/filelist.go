package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ReadFileList parses one root relative path per line. Blank lines and lines
// starting with '#' are skipped, duplicates keep their first position.
func ReadFileList(r io.Reader) ([]string, error) {
	seen := make(map[string]bool)
	files := []string{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		rel := path.Clean(filepath.ToSlash(raw))
		rel = strings.TrimPrefix(rel, "./")
		if path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, fmt.Errorf("line %d: %q is outside the root", line, raw)
		}
		if rel == "." || seen[rel] {
			continue
		}
		seen[rel] = true
		files = append(files, rel)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}
	return files, nil
}

// LoadFileList reads a list from path, or stdin when path is "-".
func LoadFileList(name string) ([]string, error) {
	if name == "-" {
		return ReadFileList(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFileList(f)
}

// existingFiles drops listed paths that are not regular files under root.
func existingFiles(root string, rels []string, opts Options) []string {
	kept := make([]string, 0, len(rels))
	for _, rel := range rels {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || !info.Mode().IsRegular() {
			opts.Logger.Warn("skip listed path", "path", rel, "error", err)
			continue
		}
		kept = append(kept, rel)
	}
	return kept
}
