// Package dom provides iterative helpers over golang.org/x/net/html trees.
//
// Every traversal here uses an explicit stack so that adversarially deep
// documents cannot exhaust the goroutine stack.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses an HTML document and returns its document node
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// Clone returns a deep copy of n and all of its descendants.
// The copy is detached: it has no parent or siblings.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}

	root := cloneNode(n)

	type pending struct {
		src    *html.Node
		parent *html.Node
	}

	var stack []pending
	pushChildren := func(src, parent *html.Node) {
		for c := src.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, pending{src: c, parent: parent})
		}
	}
	pushChildren(n, root)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := cloneNode(p.src)
		p.parent.AppendChild(c)
		pushChildren(p.src, c)
	}

	return root
}

// cloneNode copies a single node without its links
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

// DetachChildren removes every child of n
func DetachChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// Describe renders a node as <tag key=value ...> for trace output
func Describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}

	var b strings.Builder
	switch n.Type {
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	}

	b.WriteString("<")
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Val)
	}
	b.WriteString(">")
	return b.String()
}
