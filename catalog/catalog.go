// Package catalog builds the tree of creatable node types shown in "add node"
// menus and answers filtered queries over it.
package catalog

import (
	"sort"
	"strings"
)

// Declaration registers a node type under a slash-delimited menu path for
// one graph kind.
type Declaration struct {
	Kind string `yaml:"kind" toml:"kind"`
	Type string `yaml:"type" toml:"type"`
	Path string `yaml:"path" toml:"path"`
}

// Entry is one node of the catalog tree. Type is set only on leaves.
// Children are sorted by Segment.
type Entry struct {
	Segment  string
	Type     string
	Children []*Entry
}

// IsLeaf reports whether the entry names a creatable type.
func (e *Entry) IsLeaf() bool {
	return e.Type != ""
}

// Walk visits e and its descendants depth first. path is the list of
// segments from the first level below the root down to the visited entry.
func (e *Entry) Walk(fn func(path []string, entry *Entry)) {
	e.walk(nil, fn)
}

func (e *Entry) walk(prefix []string, fn func([]string, *Entry)) {
	fn(prefix, e)
	for _, c := range e.Children {
		c.walk(append(prefix[:len(prefix):len(prefix)], c.Segment), fn)
	}
}

// Leaves returns the type tokens of every leaf in tree order.
func (e *Entry) Leaves() []string {
	var out []string
	e.Walk(func(_ []string, entry *Entry) {
		if entry.IsLeaf() {
			out = append(out, entry.Type)
		}
	})
	return out
}

// Find follows a slash-delimited path from e, returning nil if any segment
// is missing.
func (e *Entry) Find(path string) *Entry {
	cur := e
	for _, seg := range splitPath(path) {
		var next *Entry
		for _, c := range cur.Children {
			if c.Segment == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// branch is the intermediate nested map. A path segment maps either to a
// leaf token or to a nested branch.
type branch struct {
	leaf     string
	children map[string]*branch
}

func (b *branch) child(seg string) *branch {
	if b.children == nil {
		b.children = make(map[string]*branch)
	}
	c, ok := b.children[seg]
	if !ok {
		c = &branch{}
		b.children[seg] = c
	}
	return c
}

// Conflict records a declaration whose leaf was dropped because its path is
// also used as a folder by another declaration.
type Conflict struct {
	Path string
	Type string
}

// Build converts declarations into a tree rooted at an entry with an empty
// segment. Empty path segments are ignored; an empty path files the type
// under its own token. When a path is both a leaf and a folder, the folder
// wins and the leaf is reported as a Conflict.
func Build(decls []Declaration) (*Entry, []Conflict) {
	root := &branch{}
	for _, d := range decls {
		segs := splitPath(d.Path)
		if len(segs) == 0 {
			segs = []string{d.Type}
		}
		cur := root
		for _, seg := range segs {
			cur = cur.child(seg)
		}
		cur.leaf = d.Type
	}

	var conflicts []Conflict
	tree := convert("", root, nil, &conflicts)
	return tree, conflicts
}

func convert(seg string, b *branch, path []string, conflicts *[]Conflict) *Entry {
	e := &Entry{Segment: seg}
	if len(b.children) == 0 {
		e.Type = b.leaf
		return e
	}
	if b.leaf != "" {
		*conflicts = append(*conflicts, Conflict{Path: strings.Join(path, "/"), Type: b.leaf})
	}

	keys := make([]string, 0, len(b.children))
	for k := range b.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e.Children = make([]*Entry, 0, len(keys))
	for _, k := range keys {
		childPath := append(path[:len(path):len(path)], k)
		e.Children = append(e.Children, convert(k, b.children[k], childPath, conflicts))
	}
	return e
}

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Filter returns the entries of root whose segment contains text
// (case-insensitive), plus the ancestors needed to reach them. A matching
// entry keeps its whole subtree. Entries kept only for their children are
// copies; root and its descendants are never modified. The root itself is
// always returned, and an empty text returns root unchanged.
func Filter(root *Entry, text string) *Entry {
	if root == nil || text == "" {
		return root
	}
	needle := strings.ToLower(text)

	out := &Entry{Segment: root.Segment, Type: root.Type}
	for _, c := range root.Children {
		if kept := filterEntry(c, needle); kept != nil {
			out.Children = append(out.Children, kept)
		}
	}
	return out
}

func filterEntry(e *Entry, needle string) *Entry {
	if strings.Contains(strings.ToLower(e.Segment), needle) {
		return e
	}
	var kept []*Entry
	for _, c := range e.Children {
		if k := filterEntry(c, needle); k != nil {
			kept = append(kept, k)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &Entry{Segment: e.Segment, Type: e.Type, Children: kept}
}
