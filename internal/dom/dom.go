// internal/dom/dom.go
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Parse reads an HTML document and returns its root element node (the
// <html> element for a full document). The returned tree is consumed
// read-only by the rest of the pipeline.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	root := RootElement(doc)
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return root, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(src string) (*html.Node, error) {
	return Parse(strings.NewReader(src))
}

// RootElement returns the first element child of a document node, or nil.
func RootElement(doc *html.Node) *html.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// Attr returns the value of the named attribute, if present.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, if present.
func ID(n *html.Node) (string, bool) {
	return Attr(n, "id")
}

// Classes returns the element's class attribute split on whitespace.
func Classes(n *html.Node) []string {
	v, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// HasClass reports whether the element carries the given class token.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// Query resolves an XPath selector against the document containing n.
func Query(root *html.Node, selector string) (*html.Node, error) {
	doc := root
	for doc.Parent != nil {
		doc = doc.Parent
	}
	node, err := htmlquery.Query(doc, selector)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath selector %q: %w", selector, err)
	}
	if node == nil {
		return nil, fmt.Errorf("no element matches selector %q", selector)
	}
	return node, nil
}
