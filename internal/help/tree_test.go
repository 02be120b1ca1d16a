package help

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	require.Equal(t, Path{"navbar", "searchPeriod"}, ParsePath("navbar.searchPeriod"))
	require.Equal(t, Path{"inspector"}, ParsePath(" inspector "))
	require.Nil(t, ParsePath(""))
	require.Equal(t, "inspector.tps", Path{"inspector", "tps"}.String())
}

func TestNewTreeRejectsMalformedContent(t *testing.T) {
	t.Parallel()

	cases := map[string][]Field{
		"duplicate key": {
			{Key: "a", Node: Text("one")},
			{Key: "a", Node: Text("two")},
		},
		"empty key":      {{Key: "", Node: Text("x")}},
		"nil node":       {{Key: "a"}},
		"nil entry":      {{Key: "a", Node: (*Entry)(nil)}},
		"nil subtree":    {{Key: "a", Node: (*Tree)(nil)}},
		"empty category": {{Key: "a", Node: &Entry{Title: "t", Categories: []Category{}}}},
	}
	for name, fields := range cases {
		_, err := NewTree(fields...)
		var be *BuildError
		require.True(t, errors.As(err, &be), "%s: expected BuildError, got %v", name, err)
	}
}

func TestMustTreePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		MustTree(Field{Key: "a", Node: Text("x")}, Field{Key: "a", Node: Text("y")})
	})
}

func TestTreeKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	tree := MustTree(
		Field{Key: "zeta", Node: Text("z")},
		Field{Key: "alpha", Node: MustTree(
			Field{Key: "mid", Node: Text("m")},
			Field{Key: "empty", Node: MustTree()},
			Field{Key: "first", Node: &Entry{Title: "f"}},
		)},
		Field{Key: "beta", Node: Text("b")},
	)

	require.Equal(t, 3, tree.Len())
	require.Equal(t, []string{"zeta", "alpha", "beta"}, tree.Keys())
	require.Equal(t, []Path{
		{"zeta"},
		{"alpha", "mid"},
		{"alpha", "first"},
		{"beta"},
	}, tree.Paths())

	var visited []string
	stop := errors.New("stop")
	err := tree.Walk(func(p Path, _ Node) error {
		visited = append(visited, p.String())
		if len(visited) == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, []string{"zeta", "alpha.mid"}, visited)
}

func TestTreeCopiesInput(t *testing.T) {
	t.Parallel()

	entry := &Entry{
		Title: "Heap",
		Categories: []Category{{
			Title: "[Legend]",
			Body:  Items{{Name: "MAX", Desc: "Largest heap size"}},
		}},
	}
	tree := MustTree(Field{Key: "statHeap", Node: entry})

	entry.Title = "changed"
	entry.Categories[0].Body.(Items)[0].Name = "changed"

	n, ok := tree.Lookup(Path{"statHeap"})
	require.True(t, ok)
	got := n.(*Entry)
	require.Equal(t, "Heap", got.Title)
	require.Equal(t, "MAX", got.Categories[0].Body.(Items)[0].Name)
}

func TestTreeLookupReturnsCopies(t *testing.T) {
	t.Parallel()

	tree := MustTree(Field{Key: "scatter", Node: &Entry{
		Title: "Scatter",
		Categories: []Category{{
			Title: "[Usage]",
			Body:  List{"drag to select"},
		}},
	}})

	n, ok := tree.Lookup(Path{"scatter"})
	require.True(t, ok)
	e := n.(*Entry)
	e.Title = "mutated"
	e.Categories[0].Body.(List)[0] = "mutated"
	e.Categories = append(e.Categories, Category{Title: "extra"})

	again, ok := tree.Lookup(Path{"scatter"})
	require.True(t, ok)
	require.Equal(t, &Entry{
		Title: "Scatter",
		Categories: []Category{{
			Title: "[Usage]",
			Body:  List{"drag to select"},
		}},
	}, again)

	keys := tree.Keys()
	keys[0] = "mutated"
	require.Equal(t, []string{"scatter"}, tree.Keys())
}

func TestTreeLookupMisses(t *testing.T) {
	t.Parallel()

	tree := MustTree(Field{Key: "a", Node: MustTree(Field{Key: "b", Node: Text("leaf")})})

	_, ok := tree.Lookup(Path{"a", "missing"})
	require.False(t, ok)
	_, ok = tree.Lookup(Path{"a", "b", "c"})
	require.False(t, ok)
	_, ok = tree.Lookup(nil)
	require.False(t, ok)

	sub, ok := tree.Lookup(Path{"a"})
	require.True(t, ok)
	require.IsType(t, &Tree{}, sub)
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	cn := MustTree(Field{Key: "a", Node: Text("cn")})
	en := MustTree(Field{Key: "a", Node: Text("en")})

	b := NewBuilder().Add("en", en).Add("cn", cn)
	reg, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"cn", "en"}, reg.Locales())
	require.True(t, reg.Has("cn"))
	require.False(t, reg.Has("ko"))

	b.Add("ko", en)
	require.False(t, reg.Has("ko"), "registry must not see locales added after Build")

	_, err = NewBuilder().Add("en", en).Add("en", cn).Build()
	require.Error(t, err)
	_, err = NewBuilder().Add(" ", en).Build()
	require.Error(t, err)
	_, err = NewBuilder().Add("en", nil).Build()
	require.Error(t, err)
}

func TestNilRegistryReportsAbsence(t *testing.T) {
	t.Parallel()

	var reg *Registry
	_, ok := reg.Tree("en")
	require.False(t, ok)
	require.Empty(t, reg.Locales())
}
