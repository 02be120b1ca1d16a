package help

import (
	"fmt"
	"strings"
)

// Path addresses a node inside a locale tree, one key per level.
type Path []string

// ParsePath splits a dotted path such as "navbar.searchPeriod".
func ParsePath(s string) Path {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

func (p Path) String() string { return strings.Join(p, ".") }

func (p Path) child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Field is one keyed child passed to NewTree.
type Field struct {
	Key  string
	Node Node
}

// Tree is an immutable, ordered level of a locale tree.
type Tree struct {
	keys  []string
	nodes map[string]Node
}

// BuildError describes malformed help content detected while building a tree.
type BuildError struct {
	Path Path
	Line int
	Msg  string
}

func (e *BuildError) Error() string {
	var b strings.Builder
	b.WriteString("help: ")
	if len(e.Path) > 0 {
		b.WriteString(e.Path.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

// NewTree builds a tree level from fields in order. Entries are copied, so later changes
// to the arguments are not visible through the tree.
func NewTree(fields ...Field) (*Tree, error) {
	t := &Tree{
		keys:  make([]string, 0, len(fields)),
		nodes: make(map[string]Node, len(fields)),
	}
	for _, f := range fields {
		p := Path{f.Key}
		if f.Key == "" {
			return nil, &BuildError{Msg: "empty key"}
		}
		if _, dup := t.nodes[f.Key]; dup {
			return nil, &BuildError{Path: p, Msg: "duplicate key"}
		}
		if err := validateNode(p, f.Node); err != nil {
			return nil, err
		}
		t.keys = append(t.keys, f.Key)
		t.nodes[f.Key] = mapNode(f.Node, identity)
	}
	return t, nil
}

// MustTree is NewTree for static definitions; it panics on malformed content.
func MustTree(fields ...Field) *Tree {
	t, err := NewTree(fields...)
	if err != nil {
		panic(err)
	}
	return t
}

func validateNode(p Path, n Node) error {
	switch v := n.(type) {
	case nil:
		return &BuildError{Path: p, Msg: "nil node"}
	case *Entry:
		if v == nil {
			return &BuildError{Path: p, Msg: "nil entry"}
		}
		if v.Categories != nil && len(v.Categories) == 0 {
			return &BuildError{Path: p, Msg: "category list declared but empty"}
		}
	case *Tree:
		if v == nil {
			return &BuildError{Path: p, Msg: "nil subtree"}
		}
	}
	return nil
}

// Len returns the number of keys on this level.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys of this level in insertion order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Lookup returns a copy of the node at path. Subtrees are returned as is since they
// cannot be modified.
func (t *Tree) Lookup(path Path) (Node, bool) {
	n, miss := t.find(path)
	if miss >= 0 {
		return nil, false
	}
	return mapNode(n, identity), true
}

// find walks path and returns the node reached, or the index of the first segment
// that could not be followed.
func (t *Tree) find(path Path) (Node, int) {
	if t == nil || len(path) == 0 {
		return nil, 0
	}
	cur := t
	for i, key := range path {
		n, ok := cur.nodes[key]
		if !ok {
			return nil, i
		}
		if i == len(path)-1 {
			return n, -1
		}
		sub, ok := n.(*Tree)
		if !ok {
			return nil, i + 1
		}
		cur = sub
	}
	return nil, 0
}

// Walk calls fn for every leaf in depth-first insertion order. Leaves are copies.
// Walking stops at the first error fn returns.
func (t *Tree) Walk(fn func(path Path, leaf Node) error) error {
	return t.walk(nil, func(p Path, n Node) error {
		return fn(p, mapNode(n, identity))
	})
}

func (t *Tree) walk(prefix Path, fn func(Path, Node) error) error {
	if t == nil {
		return nil
	}
	for _, key := range t.keys {
		p := prefix.child(key)
		n := t.nodes[key]
		if sub, ok := n.(*Tree); ok {
			if err := sub.walk(p, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(p, n); err != nil {
			return err
		}
	}
	return nil
}

// Paths lists every leaf path in depth-first insertion order.
func (t *Tree) Paths() []Path {
	var out []Path
	_ = t.walk(nil, func(p Path, _ Node) error {
		out = append(out, p)
		return nil
	})
	return out
}
