// Package extract renders an HTML tree as normalized plain text for indexing.
package extract

import (
	"strings"

	"github.com/bnema/element-filter/internal/dom"
	"golang.org/x/net/html"
)

// Text walks the tree in document order and returns its visible text.
// script and style elements and comments are skipped with their subtrees.
// Each text node has its whitespace runs collapsed and is trimmed; non-empty
// fragments are joined by a single space.
func Text(root *html.Node) string {
	var b strings.Builder

	w := dom.NewWalker(root)
	for n := w.Next(); n != nil; n = w.Next() {
		if skip(n) {
			w.SkipChildren()
			continue
		}
		if n.Type != html.TextNode {
			continue
		}

		text := Normalize(n.Data)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}

	return b.String()
}

// Normalize collapses whitespace runs to one space and trims the result
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func skip(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode:
		return true
	case html.ElementNode:
		return strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style")
	}
	return false
}
