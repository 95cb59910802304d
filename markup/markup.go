// Package markup builds immutable HTML node trees from data and renders them.
//
// Nodes are plain values: building a tree never touches a writer, and a tree
// can be rendered any number of times with the same output. Component adapts
// a tree to templ so it plugs into the same rendering path as templ pages.
package markup

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type kind uint8

const (
	kindElement kind = iota
	kindText
	kindRaw
	kindFragment
)

// Attr is a single HTML attribute. An attribute with Bool set renders without
// a value, e.g. <input disabled>.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// A is shorthand for a valued attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// Href is shorthand for the href attribute.
func Href(url string) Attr { return A("href", url) }

// Class joins the non-empty class names into one class attribute.
func Class(names ...string) Attr {
	kept := names[:0:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	return A("class", strings.Join(kept, " "))
}

// Node is one immutable element of a markup tree.
type Node struct {
	kind     kind
	tag      string
	text     string
	attrs    []Attr
	children []Node
}

// El builds an element. Attrs and children are copied.
func El(tag string, attrs []Attr, children ...Node) Node {
	return Node{
		kind:     kindElement,
		tag:      tag,
		attrs:    append([]Attr(nil), attrs...),
		children: append([]Node(nil), children...),
	}
}

// Text is escaped text content.
func Text(s string) Node { return Node{kind: kindText, text: s} }

// Raw is trusted HTML written as is.
func Raw(s string) Node { return Node{kind: kindRaw, text: s} }

// Fragment groups nodes without a wrapping element.
func Fragment(children ...Node) Node {
	return Node{kind: kindFragment, children: append([]Node(nil), children...)}
}

// Attrs is a convenience for building attribute lists inline.
func Attrs(a ...Attr) []Attr { return a }

// Tag returns the element name, or "" for non-elements.
func (n Node) Tag() string { return n.tag }

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns a copy of the child nodes.
func (n Node) Children() []Node {
	return append([]Node(nil), n.children...)
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Render writes n as HTML.
func (n Node) Render(w io.Writer) error {
	_, err := io.WriteString(w, n.String())
	return err
}

// String renders n to a string.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	switch n.kind {
	case kindText:
		b.WriteString(templ.EscapeString(n.text))
	case kindRaw:
		b.WriteString(n.text)
	case kindFragment:
		for _, c := range n.children {
			c.write(b)
		}
	case kindElement:
		b.WriteString("<")
		b.WriteString(n.tag)
		for _, a := range n.attrs {
			b.WriteString(" ")
			b.WriteString(a.Name)
			if a.Bool {
				continue
			}
			b.WriteString(`="`)
			b.WriteString(templ.EscapeString(a.Value))
			b.WriteString(`"`)
		}
		b.WriteString(">")
		if voidElements[n.tag] {
			return
		}
		for _, c := range n.children {
			c.write(b)
		}
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteString(">")
	}
}

// Component adapts n to templ.
func Component(n Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return n.Render(w)
	})
}

// FromComponent renders a templ component once and embeds the result as raw
// HTML. It is how markdown bodies are placed inside a node tree.
func FromComponent(ctx context.Context, c templ.Component) (Node, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return Node{}, err
	}
	return Raw(buf.String()), nil
}
