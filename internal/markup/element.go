package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/roach88/ambercart/internal/extract"
)

// Element wraps an HTML element node.
type Element struct {
	n *html.Node
}

var _ extract.Node = (*Element)(nil)

// Wrap returns an Element for n, or nil if n is not an element.
func Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{n: n}
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.n
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Parent returns the enclosing element, or nil at the document root.
func (e *Element) Parent() extract.Node {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return &Element{n: p}
		}
	}
	return nil
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.n.Data
}

// HasClass reports whether the class attribute lists class.
func (e *Element) HasClass(class string) bool {
	v, ok := e.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// FindByClass returns the first descendant, in document order, with class.
func (e *Element) FindByClass(class string) (extract.Node, bool) {
	found := find(e.n, func(n *html.Node) bool {
		return n != e.n && (&Element{n: n}).HasClass(class)
	})
	if found == nil {
		return nil, false
	}
	return &Element{n: found}, true
}

// Text returns the concatenated text content with whitespace collapsed.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// find returns the first element node, depth first, satisfying match.
func find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every element node, in document order, satisfying match.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}
