package extract

// Node is the markup adapter the extractor reads product data from.
// Implementations wrap whatever document model the page uses.
type Node interface {
	// Attr returns the value of an attribute and whether it is present.
	Attr(name string) (string, bool)
	// Parent returns the enclosing element, or nil at the root.
	Parent() Node
	// Tag returns the lower-case element name.
	Tag() string
	// HasClass reports whether the element carries the CSS class.
	HasClass(class string) bool
	// FindByClass returns the first descendant carrying the CSS class.
	FindByClass(class string) (Node, bool)
	// Text returns the visible text content.
	Text() string
}
