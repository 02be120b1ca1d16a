package help

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads <dir>/<locale>.yaml from fsys for every locale and builds a Registry.
func Load(fsys fs.FS, dir string, locales []string) (*Registry, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("help: no locales to load from %s", dir)
	}
	b := NewBuilder()
	for _, l := range locales {
		l = strings.TrimSpace(l)
		file := path.Join(dir, l+".yaml")
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("help: load locale %s: %w", l, err)
		}
		tree, err := DecodeTree(raw)
		if err != nil {
			return nil, fmt.Errorf("help: decode %s: %w", file, err)
		}
		b.Add(l, tree)
	}
	return b.Build()
}

// DecodeTree parses one locale document. The top level must be a mapping.
func DecodeTree(raw []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewTree()
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &BuildError{Line: root.Line, Msg: "top level must be a mapping"}
	}
	return decodeTree(root, nil)
}

// A mapping is an entry when it has a title or category key; any other mapping is a section,
// so a bare desc decodes as a Text leaf. mainStyle only styles entries and is rejected in a
// section.
var (
	entryKeys    = map[string]bool{"mainStyle": true, "title": true, "desc": true, "category": true}
	categoryKeys = map[string]bool{"title": true, "image": true, "items": true, "list": true}
	itemKeys     = map[string]bool{"name": true, "desc": true, "nameStyle": true, "descStyle": true}
)

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

type pair struct {
	key   string
	value *yaml.Node
	line  int
}

// pairs returns the key/value pairs of a mapping, rejecting duplicate and non-scalar keys.
func pairs(n *yaml.Node, p Path) ([]pair, error) {
	out := make([]pair, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := deref(n.Content[i])
		if k.Kind != yaml.ScalarNode {
			return nil, &BuildError{Path: p, Line: k.Line, Msg: "mapping key must be a scalar"}
		}
		if seen[k.Value] {
			return nil, &BuildError{Path: p.child(k.Value), Line: k.Line, Msg: "duplicate key"}
		}
		seen[k.Value] = true
		out = append(out, pair{key: k.Value, value: deref(n.Content[i+1]), line: k.Line})
	}
	return out, nil
}

func decodeTree(n *yaml.Node, p Path) (*Tree, error) {
	kv, err := pairs(n, p)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, len(kv))
	for _, e := range kv {
		if e.key == "mainStyle" {
			return nil, &BuildError{Path: p, Line: e.line, Msg: "mainStyle outside an entry (missing title?)"}
		}
		child := p.child(e.key)
		node, err := decodeNode(e.value, child)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: e.key, Node: node})
	}
	t, err := NewTree(fields...)
	if err != nil {
		var be *BuildError
		if errors.As(err, &be) {
			be.Path = append(append(Path{}, p...), be.Path...)
			be.Line = n.Line
		}
		return nil, err
	}
	return t, nil
}

func decodeNode(n *yaml.Node, p Path) (Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		s, err := str(n, p)
		if err != nil {
			return nil, err
		}
		return Text(s), nil
	case yaml.SequenceNode:
		parts, err := strs(n, p)
		if err != nil {
			return nil, err
		}
		return Text(strings.Join(parts, "")), nil
	case yaml.MappingNode:
		if isEntry(n) {
			return decodeEntry(n, p)
		}
		return decodeTree(n, p)
	default:
		return nil, &BuildError{Path: p, Line: n.Line, Msg: "unsupported node"}
	}
}

func isEntry(n *yaml.Node) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch deref(n.Content[i]).Value {
		case "title", "category":
			return true
		}
	}
	return false
}

func decodeEntry(n *yaml.Node, p Path) (*Entry, error) {
	kv, err := pairs(n, p)
	if err != nil {
		return nil, err
	}
	e := &Entry{}
	for _, f := range kv {
		if !entryKeys[f.key] {
			return nil, &BuildError{Path: p, Line: f.line, Msg: fmt.Sprintf("unknown entry key %q", f.key)}
		}
		if f.key == "category" {
			cats, err := decodeCategories(f.value, p)
			if err != nil {
				return nil, err
			}
			e.Categories = cats
			continue
		}
		s, err := str(f.value, p)
		if err != nil {
			return nil, err
		}
		switch f.key {
		case "mainStyle":
			e.MainStyle = s
		case "title":
			e.Title = s
		case "desc":
			e.Desc = s
		}
	}
	return e, nil
}

func decodeCategories(n *yaml.Node, p Path) ([]Category, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &BuildError{Path: p, Line: n.Line, Msg: "category must be a list"}
	}
	if len(n.Content) == 0 {
		return nil, &BuildError{Path: p, Line: n.Line, Msg: "category list declared but empty"}
	}
	out := make([]Category, 0, len(n.Content))
	for _, raw := range n.Content {
		c, err := decodeCategory(deref(raw), p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeCategory(n *yaml.Node, p Path) (Category, error) {
	if n.Kind != yaml.MappingNode {
		return Category{}, &BuildError{Path: p, Line: n.Line, Msg: "category must be a mapping"}
	}
	kv, err := pairs(n, p)
	if err != nil {
		return Category{}, err
	}
	var c Category
	for _, f := range kv {
		if !categoryKeys[f.key] {
			return Category{}, &BuildError{Path: p, Line: f.line, Msg: fmt.Sprintf("unknown category key %q", f.key)}
		}
		switch f.key {
		case "title", "image":
			s, err := str(f.value, p)
			if err != nil {
				return Category{}, err
			}
			if f.key == "title" {
				c.Title = s
			} else {
				c.Image = s
			}
		case "items", "list":
			if c.Body != nil {
				return Category{}, &BuildError{Path: p, Line: f.line, Msg: "category has both items and list"}
			}
			if f.key == "list" {
				list, err := strs(f.value, p)
				if err != nil {
					return Category{}, err
				}
				c.Body = List(list)
				continue
			}
			items, err := decodeItems(f.value, p)
			if err != nil {
				return Category{}, err
			}
			c.Body = items
		}
	}
	return c, nil
}

func decodeItems(n *yaml.Node, p Path) (Items, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &BuildError{Path: p, Line: n.Line, Msg: "items must be a list"}
	}
	out := make(Items, 0, len(n.Content))
	for _, raw := range n.Content {
		m := deref(raw)
		if m.Kind != yaml.MappingNode {
			return nil, &BuildError{Path: p, Line: m.Line, Msg: "item must be a mapping"}
		}
		kv, err := pairs(m, p)
		if err != nil {
			return nil, err
		}
		var it Item
		for _, f := range kv {
			if !itemKeys[f.key] {
				return nil, &BuildError{Path: p, Line: f.line, Msg: fmt.Sprintf("unknown item key %q", f.key)}
			}
			s, err := str(f.value, p)
			if err != nil {
				return nil, err
			}
			switch f.key {
			case "name":
				it.Name = s
			case "desc":
				it.Desc = s
			case "nameStyle":
				it.NameStyle = s
			case "descStyle":
				it.DescStyle = s
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func str(n *yaml.Node, p Path) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", &BuildError{Path: p, Line: n.Line, Msg: "expected a string"}
	}
	return n.Value, nil
}

func strs(n *yaml.Node, p Path) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &BuildError{Path: p, Line: n.Line, Msg: "expected a list of strings"}
	}
	out := make([]string, 0, len(n.Content))
	for _, raw := range n.Content {
		s, err := str(deref(raw), p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
