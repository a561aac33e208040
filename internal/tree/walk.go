package tree

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var errNotDir = errors.New("path is not a directory")

// WalkOptions controls which entries the walker reports and their initial
// flags.
type WalkOptions struct {
	// IncludeByDefault is the initial Included flag of every file.
	IncludeByDefault bool
	// StartCollapsed starts every directory collapsed instead of expanded.
	StartCollapsed bool
	// ShowHidden keeps dot-files and dot-directories.
	ShowHidden bool
	// Exclude holds extra doublestar globs.
	Exclude []string
}

// Walk lists everything under root in pre-order: directories first, then
// files, each group ordered case-insensitively. The root itself is not
// reported; its children have depth 0. Unreadable subdirectories are listed
// but left empty.
func Walk(root string, opts WalkOptions) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	w := walker{
		root:    root,
		opts:    opts,
		matcher: NewMatcher(opts.Exclude),
	}
	if err := w.walkDir("", 0); err != nil {
		return nil, err
	}
	return w.entries, nil
}

type walker struct {
	root    string
	opts    WalkOptions
	matcher *Matcher
	entries []Entry
}

type dirChild struct {
	name  string
	isDir bool
}

func (w *walker) walkDir(rel string, depth int) error {
	dir := w.abs(rel)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return err
		}
		return nil
	}

	pushed := false
	if set, ok := readIgnoreFile(filepath.Join(dir, IgnoreFileName), rel); ok {
		w.matcher.push(set)
		pushed = true
	}
	defer func() {
		if pushed {
			w.matcher.pop()
		}
	}()

	children := make([]dirChild, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !w.opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(filepath.Join(dir, name))
			if err != nil || target.IsDir() {
				continue
			}
			isDir = false
		}
		if w.matcher.Ignored(join(rel, name), isDir) {
			continue
		}
		children = append(children, dirChild{name: name, isDir: isDir})
	}
	sortChildren(children)

	for _, child := range children {
		childPath := join(rel, child.name)
		entry := NewEntry(childPath, depth, child.isDir, w.opts.IncludeByDefault)
		if child.isDir && w.opts.StartCollapsed {
			entry.Expanded = false
		}
		w.entries = append(w.entries, entry)
		if child.isDir {
			if err := w.walkDir(childPath, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) abs(rel string) string {
	if rel == "" {
		return w.root
	}
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func sortChildren(children []dirChild) {
	sort.SliceStable(children, func(i, j int) bool {
		ci, cj := children[i], children[j]
		switch {
		case ci.isDir == cj.isDir:
			return strings.ToLower(ci.name) < strings.ToLower(cj.name)
		case ci.isDir:
			return true
		default:
			return false
		}
	})
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

// Dirs returns the absolute directories covered by entries, root first.
func Dirs(root string, entries []Entry) []string {
	dirs := []string{root}
	for _, e := range entries {
		if e.Kind == Directory {
			dirs = append(dirs, filepath.Join(root, filepath.FromSlash(e.Path)))
		}
	}
	return dirs
}
