package help

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Registry maps locale codes to their help trees. It is assembled once at startup
// and is safe for concurrent use because nothing can change it afterwards.
type Registry struct {
	trees map[string]*Tree
}

// Builder collects locale trees for a Registry.
type Builder struct {
	trees map[string]*Tree
	errs  []error
}

func NewBuilder() *Builder {
	return &Builder{trees: map[string]*Tree{}}
}

// Add registers tree under locale. Problems are reported by Build.
func (b *Builder) Add(locale string, tree *Tree) *Builder {
	locale = strings.TrimSpace(locale)
	switch {
	case locale == "":
		b.errs = append(b.errs, errors.New("help: empty locale code"))
	case tree == nil:
		b.errs = append(b.errs, fmt.Errorf("help: locale %s: nil tree", locale))
	default:
		if _, dup := b.trees[locale]; dup {
			b.errs = append(b.errs, fmt.Errorf("help: locale %s registered twice", locale))
			return b
		}
		b.trees[locale] = tree
	}
	return b
}

// Build returns the frozen registry. Later calls to Add do not affect it.
func (b *Builder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	trees := make(map[string]*Tree, len(b.trees))
	for k, v := range b.trees {
		trees[k] = v
	}
	return &Registry{trees: trees}, nil
}

// Tree returns the tree for locale. A missing locale is reported as absence.
func (r *Registry) Tree(locale string) (*Tree, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.trees[locale]
	return t, ok
}

func (r *Registry) Has(locale string) bool {
	_, ok := r.Tree(locale)
	return ok
}

// Locales lists the registered locale codes, sorted.
func (r *Registry) Locales() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.trees))
	for k := range r.trees {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
