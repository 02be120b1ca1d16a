package help

import "strconv"

// Node is one value in a locale tree: an *Entry, a Text leaf or a nested *Tree.
type Node interface {
	isNode()
}

// Entry is a structured help leaf shown in a tooltip or popover.
// Title, Desc and every category string may carry trusted markup.
type Entry struct {
	MainStyle  string
	Title      string
	Desc       string
	Categories []Category
}

// Text is a leaf that holds one pre-joined HTML string.
type Text string

// Category groups legend rows or bullet points below an entry description.
type Category struct {
	Title string
	Image string
	// Body is Items, List or nil.
	Body Body
}

// Body is the content of a category: Items or List.
type Body interface {
	isBody()
}

// Items is a two column legend.
type Items []Item

// List is a bullet list of plain strings.
type List []string

// Item is one legend row.
type Item struct {
	Name      string
	Desc      string
	NameStyle string
	DescStyle string
}

func (*Entry) isNode() {}
func (Text) isNode()   {}
func (*Tree) isNode()  {}

func (Items) isBody() {}
func (List) isBody()  {}

func identity(s string) string { return s }

// mapNode returns a deep copy of a leaf with fn applied to every text field.
// Style fields and category images are copied verbatim. Subtrees are immutable and returned as is.
func mapNode(n Node, fn func(string) string) Node {
	switch v := n.(type) {
	case *Entry:
		return mapEntry(v, fn)
	case Text:
		return Text(fn(string(v)))
	default:
		return n
	}
}

func mapEntry(e *Entry, fn func(string) string) *Entry {
	if e == nil {
		return nil
	}
	out := &Entry{
		MainStyle: e.MainStyle,
		Title:     fn(e.Title),
		Desc:      fn(e.Desc),
	}
	if e.Categories != nil {
		out.Categories = make([]Category, len(e.Categories))
		for i, c := range e.Categories {
			out.Categories[i] = Category{
				Title: fn(c.Title),
				Image: c.Image,
				Body:  mapBody(c.Body, fn),
			}
		}
	}
	return out
}

func mapBody(b Body, fn func(string) string) Body {
	switch v := b.(type) {
	case Items:
		if v == nil {
			return Items(nil)
		}
		items := make(Items, len(v))
		for i, it := range v {
			items[i] = Item{
				Name:      fn(it.Name),
				Desc:      fn(it.Desc),
				NameStyle: it.NameStyle,
				DescStyle: it.DescStyle,
			}
		}
		return items
	case List:
		if v == nil {
			return List(nil)
		}
		list := make(List, len(v))
		for i, s := range v {
			list[i] = fn(s)
		}
		return list
	default:
		return nil
	}
}

// visitText calls fn with a field label and the value of every text field of a leaf.
// Category images are visited too, under a label ending in ".image".
func visitText(n Node, fn func(field, text string)) {
	switch v := n.(type) {
	case Text:
		fn("text", string(v))
	case *Entry:
		if v == nil {
			return
		}
		fn("title", v.Title)
		fn("desc", v.Desc)
		for i, c := range v.Categories {
			prefix := "category[" + strconv.Itoa(i) + "]"
			fn(prefix+".title", c.Title)
			fn(prefix+".image", c.Image)
			switch body := c.Body.(type) {
			case Items:
				for j, it := range body {
					fn(prefix+".items["+strconv.Itoa(j)+"].name", it.Name)
					fn(prefix+".items["+strconv.Itoa(j)+"].desc", it.Desc)
				}
			case List:
				for j, s := range body {
					fn(prefix+".list["+strconv.Itoa(j)+"]", s)
				}
			}
		}
	}
}
