package tree

import (
	"bufio"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreFileName is read from every walked directory.
const IgnoreFileName = ".gitignore"

type ignoreRule struct {
	pattern string
	negate  bool
	dirOnly bool
}

// ignoreSet is the rule list of one ignore file, scoped to the directory that
// holds it.
type ignoreSet struct {
	base  string
	rules []ignoreRule
}

// ParseIgnoreLines turns gitignore-style lines into rules scoped to base.
// Supported: comments, blank lines, "!" negation, trailing "/" for
// directories, leading or inner "/" for anchoring.
func ParseIgnoreLines(base string, lines []string) ignoreSet {
	set := ignoreSet{base: base}
	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var r ignoreRule
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		line = strings.TrimPrefix(line, `\`)
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		if line == "" {
			continue
		}
		if strings.Contains(line, "/") {
			r.pattern = strings.TrimPrefix(line, "/")
		} else {
			r.pattern = "**/" + line
		}
		set.rules = append(set.rules, r)
	}
	return set
}

func readIgnoreFile(absPath, base string) (ignoreSet, bool) {
	file, err := os.Open(absPath)
	if err != nil {
		return ignoreSet{}, false
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		return ignoreSet{}, false
	}
	return ParseIgnoreLines(base, lines), true
}

// match reports (matched, ignored) for rel, a root-relative slash path.
func (s ignoreSet) match(rel string, isDir bool) (bool, bool) {
	local := rel
	if s.base != "" {
		if !strings.HasPrefix(rel, s.base+"/") {
			return false, false
		}
		local = rel[len(s.base)+1:]
	}
	matched, ignored := false, false
	for _, r := range s.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if ok, _ := doublestar.Match(r.pattern, local); ok {
			matched = true
			ignored = !r.negate
		}
	}
	return matched, ignored
}

// Matcher combines built-in skips, user globs and the ignore files seen so far
// on the current walk path.
type Matcher struct {
	globs []string
	sets  []ignoreSet
}

// NewMatcher builds a matcher with extra doublestar globs matched against the
// root-relative path and the base name.
func NewMatcher(globs []string) *Matcher {
	return &Matcher{globs: globs}
}

func (m *Matcher) push(set ignoreSet) {
	m.sets = append(m.sets, set)
}

func (m *Matcher) pop() {
	m.sets = m.sets[:len(m.sets)-1]
}

// Ignored reports whether rel should be left out of the walk. Later (deeper)
// ignore files win over earlier ones.
func (m *Matcher) Ignored(rel string, isDir bool) bool {
	name := path.Base(rel)
	if isDir && shouldSkipDir(name) {
		return true
	}
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, name); ok {
			return true
		}
	}
	ignored := false
	for _, s := range m.sets {
		if matched, ig := s.match(rel, isDir); matched {
			ignored = ig
		}
	}
	return ignored
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", "node_modules", ".hg", ".svn", ".idea", ".vscode":
		return true
	default:
		return false
	}
}
