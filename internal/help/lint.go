package help

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Finding is one problem reported by the content checks.
type Finding struct {
	Locale  string
	Path    Path
	Field   string
	Message string
}

func (f Finding) String() string {
	if f.Field == "" {
		return fmt.Sprintf("%s %s: %s", f.Locale, f.Path, f.Message)
	}
	return fmt.Sprintf("%s %s [%s]: %s", f.Locale, f.Path, f.Field, f.Message)
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// LintMarkup reports unbalanced markup in every text field of every locale.
func LintMarkup(reg *Registry) []Finding {
	var out []Finding
	for _, locale := range reg.Locales() {
		tree, _ := reg.Tree(locale)
		_ = tree.walk(nil, func(p Path, n Node) error {
			visitText(n, func(field, text string) {
				for _, msg := range checkMarkup(text) {
					out = append(out, Finding{Locale: locale, Path: p, Field: field, Message: msg})
				}
			})
			return nil
		})
	}
	return out
}

// checkMarkup tokenizes s and reports elements that are closed without being opened
// or never closed at all.
func checkMarkup(s string) []string {
	if !strings.ContainsRune(s, '<') {
		return nil
	}
	var msgs []string
	var open []string
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			for i := len(open) - 1; i >= 0; i-- {
				msgs = append(msgs, fmt.Sprintf("unclosed <%s>", open[i]))
			}
			return msgs
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !voidElements[atom.Lookup(name)] {
				open = append(open, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[atom.Lookup(name)] {
				continue
			}
			idx := -1
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == tag {
					idx = i
					break
				}
			}
			if idx < 0 {
				msgs = append(msgs, fmt.Sprintf("unexpected </%s>", tag))
				continue
			}
			for i := len(open) - 1; i > idx; i-- {
				msgs = append(msgs, fmt.Sprintf("unclosed <%s>", open[i]))
			}
			open = open[:idx]
		}
	}
}

// Drift reports leaf paths present in one of the two locales but not the other.
func Drift(reg *Registry, a, b string) []Finding {
	ta, okA := reg.Tree(a)
	tb, okB := reg.Tree(b)
	if !okA || !okB {
		var out []Finding
		for _, l := range []string{a, b} {
			if !reg.Has(l) {
				out = append(out, Finding{Locale: l, Message: "locale not registered"})
			}
		}
		return out
	}
	var out []Finding
	out = append(out, missingFrom(ta, tb, a, b)...)
	out = append(out, missingFrom(tb, ta, b, a)...)
	return out
}

func missingFrom(src, dst *Tree, srcLocale, dstLocale string) []Finding {
	var out []Finding
	for _, p := range src.Paths() {
		n, miss := dst.find(p)
		if miss < 0 {
			if _, isTree := n.(*Tree); !isTree {
				continue
			}
		}
		out = append(out, Finding{
			Locale:  dstLocale,
			Path:    p,
			Message: fmt.Sprintf("missing, present in %s", srcLocale),
		})
	}
	return out
}

// PlaceholderUse lists the placeholder names one leaf expects.
type PlaceholderUse struct {
	Path  Path
	Names []string
}

// Placeholders returns, in tree order, every leaf of locale that contains placeholders.
func Placeholders(reg *Registry, locale string) []PlaceholderUse {
	tree, ok := reg.Tree(locale)
	if !ok {
		return nil
	}
	var out []PlaceholderUse
	_ = tree.walk(nil, func(p Path, n Node) error {
		var names []string
		seen := map[string]bool{}
		visitText(n, func(field, text string) {
			if strings.HasSuffix(field, ".image") {
				return
			}
			for _, name := range placeholderNames(text) {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		})
		if len(names) > 0 {
			out = append(out, PlaceholderUse{Path: p, Names: names})
		}
		return nil
	})
	return out
}
