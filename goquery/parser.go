// Package goquery implements tabldoc.HTMLParser on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tabldoc"
	"golang.org/x/net/html"
)

// Ensure Parser implements tabldoc.HTMLParser at compile time.
var _ tabldoc.HTMLParser = (*Parser)(nil)

// Parser parses markup into goquery-backed nodes.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses markup into a document node.
// If the markup cannot be parsed, an empty document is returned so that
// every search on it yields no results.
func (p *Parser) Parse(markup string) tabldoc.Node {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return NewNode(emptyDocument())
	}
	return NewNode(doc.Selection)
}

func emptyDocument() *goquery.Selection {
	return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode}).Selection
}

// Ensure Node implements tabldoc.Node at compile time.
var _ tabldoc.Node = (*Node)(nil)

// Node wraps a goquery selection holding a single element (or a document).
type Node struct {
	sel *goquery.Selection
}

// NewNode wraps a selection. A nil selection behaves like an empty document.
func NewNode(sel *goquery.Selection) *Node {
	if sel == nil {
		sel = emptyDocument()
	}
	return &Node{sel: sel}
}

// FindAll returns all descendants matching tag, optionally filtered by class.
// An invalid tag yields no results.
func (n *Node) FindAll(tag, class string) []tabldoc.Node {
	found := n.sel.Find(tag)
	if class != "" {
		found = found.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.HasClass(class)
		})
	}

	nodes := make([]tabldoc.Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// First returns the first descendant with the given tag.
func (n *Node) First(tag string) (tabldoc.Node, bool) {
	found := n.sel.Find(tag).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &Node{sel: found}, true
}

// Text returns the trimmed text content of the element.
func (n *Node) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

// Attr returns the named attribute of the element.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
