package tree

import "strings"

type buildNode struct {
	name     string
	path     string
	isDir    bool
	children []*buildNode
}

func (n *buildNode) child(name string) *buildNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Build constructs an entry list that mirrors the provided relative file
// paths, synthesising the directories in between. The result has the same
// ordering guarantees as Walk.
func Build(files []string, opts WalkOptions) []Entry {
	root := &buildNode{isDir: true}

	for _, rel := range files {
		rel = strings.Trim(rel, "/")
		if rel == "" {
			continue
		}
		parts := strings.Split(rel, "/")
		current := root
		currentPath := ""

		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			currentPath = join(currentPath, part)
			isDir := i < len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &buildNode{name: part, path: currentPath, isDir: isDir}
				current.children = append(current.children, child)
			}
			if isDir && !child.isDir {
				// a path used both as file and directory is kept as a directory
				child.isDir = true
			}
			current = child
		}
	}

	var entries []Entry
	var flatten func(n *buildNode, depth int)
	flatten = func(n *buildNode, depth int) {
		children := make([]dirChild, len(n.children))
		byName := make(map[string]*buildNode, len(n.children))
		for i, c := range n.children {
			children[i] = dirChild{name: c.name, isDir: c.isDir}
			byName[c.name] = c
		}
		sortChildren(children)
		for _, dc := range children {
			c := byName[dc.name]
			entry := NewEntry(c.path, depth, c.isDir, opts.IncludeByDefault)
			if c.isDir && opts.StartCollapsed {
				entry.Expanded = false
			}
			entries = append(entries, entry)
			if c.isDir {
				flatten(c, depth+1)
			}
		}
	}
	flatten(root, 0)
	return entries
}
