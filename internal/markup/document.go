package markup

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Attribute vocabulary shared with the rendered cart view.
const (
	AttrAction  = "data-cart-act"
	AttrItemID  = "data-cart-id"
	AttrCounter = "data-cart-count"

	ClassAddButton = "buy-btn"
	IDCounter      = "cartCount"
)

// Document is a parsed storefront page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(bytes.NewBufferString(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Triggers returns every add control in document order.
func (d *Document) Triggers() []*Element {
	nodes := findAll(d.root, func(n *html.Node) bool {
		e := &Element{n: n}
		if act, ok := e.Attr(AttrAction); ok {
			return act == string(ActionAdd)
		}
		return e.HasClass(ClassAddButton)
	})
	return wrapAll(nodes)
}

// Counters returns every badge element: id="cartCount" or data-cart-count.
func (d *Document) Counters() []*Element {
	nodes := findAll(d.root, func(n *html.Node) bool {
		e := &Element{n: n}
		if id, ok := e.Attr("id"); ok && id == IDCounter {
			return true
		}
		_, ok := e.Attr(AttrCounter)
		return ok
	})
	return wrapAll(nodes)
}

// ByID returns the element with the given id attribute.
func (d *Document) ByID(id string) (*Element, bool) {
	n := find(d.root, func(n *html.Node) bool {
		v, ok := (&Element{n: n}).Attr("id")
		return ok && v == id
	})
	if n == nil {
		return nil, false
	}
	return &Element{n: n}, true
}

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String serializes the document to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = &Element{n: n}
	}
	return out
}
