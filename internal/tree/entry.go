package tree

import "strings"

// Kind distinguishes files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "dir"
	}
	return "file"
}

// Entry is a single walked path. Entries live in walk pre-order inside a
// Store; a directory's descendants always follow it immediately.
type Entry struct {
	Path     string
	Depth    int
	Kind     Kind
	Expanded bool
	Included bool
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == Directory
}

// Name returns the last path element.
func (e Entry) Name() string {
	if i := strings.LastIndex(e.Path, "/"); i >= 0 {
		return e.Path[i+1:]
	}
	return e.Path
}

// NewEntry creates an entry the way the walker reports it. Directories start
// expanded; files start with the given inclusion default.
func NewEntry(path string, depth int, isDir bool, included bool) Entry {
	if isDir {
		return Entry{Path: path, Depth: depth, Kind: Directory, Expanded: true}
	}
	return Entry{Path: path, Depth: depth, Kind: File, Included: included}
}

// Store holds the full ordered entry list. Entries are never added or
// removed after construction; only the Expanded and Included flags change.
type Store struct {
	entries []Entry
}

// NewStore takes ownership of entries.
func NewStore(entries []Entry) *Store {
	return &Store{entries: entries}
}

// Len returns the number of entries, visible or not.
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns the entry at index i of the full store.
func (s *Store) At(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// IndexOf returns the store index for path, or -1.
func (s *Store) IndexOf(path string) int {
	for i, e := range s.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// Visible returns the store indexes that are not hidden by a collapsed
// ancestor. The scan keeps a stack of collapsed directory depths; an entry
// pops every depth >= its own, and is hidden while anything remains.
func (s *Store) Visible() []int {
	visible := make([]int, 0, len(s.entries))
	var collapsed []int
	for i, e := range s.entries {
		for len(collapsed) > 0 && collapsed[len(collapsed)-1] >= e.Depth {
			collapsed = collapsed[:len(collapsed)-1]
		}
		if len(collapsed) > 0 {
			continue
		}
		visible = append(visible, i)
		if e.Kind == Directory && !e.Expanded {
			collapsed = append(collapsed, e.Depth)
		}
	}
	return visible
}

// SetExpanded sets the expand flag of a directory. Files and out-of-range
// indexes are ignored.
func (s *Store) SetExpanded(i int, expanded bool) bool {
	if i < 0 || i >= len(s.entries) || s.entries[i].Kind != Directory {
		return false
	}
	s.entries[i].Expanded = expanded
	return true
}

// ToggleIncluded flips the include flag of a file entry. Directories are not
// toggled; there is no recursive include.
func (s *Store) ToggleIncluded(i int) bool {
	if i < 0 || i >= len(s.entries) || s.entries[i].Kind != File {
		return false
	}
	s.entries[i].Included = !s.entries[i].Included
	return true
}

// IncludedPaths lists included files in store order.
func (s *Store) IncludedPaths() []string {
	var paths []string
	for _, e := range s.entries {
		if e.Kind == File && e.Included {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Rendered serialises the whole store, ignoring collapse state. Each line is
// indented by two spaces per depth and included files carry a "* " marker.
func (s *Store) Rendered() string {
	var b strings.Builder
	for _, e := range s.entries {
		b.WriteString(strings.Repeat("  ", e.Depth))
		if e.Kind == File && e.Included {
			b.WriteString("* ")
		}
		b.WriteString(e.Path)
		b.WriteByte('\n')
	}
	return b.String()
}
