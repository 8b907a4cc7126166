package tabldoc

// Node is an element of a parsed HTML document.
// Searches on a Node never fail: markup that could not be parsed behaves
// like an empty document.
type Node interface {
	// FindAll returns all descendants with the given tag, in document order.
	// If class is non-empty, only elements carrying that class are returned.
	FindAll(tag, class string) []Node

	// First returns the first descendant with the given tag.
	First(tag string) (Node, bool)

	// Text returns the element's text content with surrounding whitespace trimmed.
	Text() string

	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)
}

// HTMLParser parses raw markup into a queryable document.
type HTMLParser interface {
	Parse(markup string) Node
}
