package filter

import (
	"github.com/bnema/element-filter/internal/dom"
	"github.com/bnema/element-filter/internal/selector"
	"golang.org/x/net/html"
)

// Prune empties every node of the tree matched by the set, in place.
// A matched node keeps its position as an empty placeholder: its children are
// detached and, for text-like nodes, its data is cleared. Descendants of a
// matched node are never evaluated. Returns the number of pruned nodes.
func Prune(root *html.Node, set selector.Set, observe Observer) int {
	pruned := 0

	w := dom.NewWalker(root)
	for n := w.Next(); n != nil; n = w.Next() {
		i := set.MatchIndex(n)
		if i < 0 {
			continue
		}

		if observe != nil {
			observe(Event{Mode: ModeBlacklist, Node: n, Selector: set.At(i)})
		}
		if n.Type != html.ElementNode {
			n.Data = ""
		}
		dom.DetachChildren(n)
		w.SkipChildren()
		pruned++
	}

	return pruned
}

// Collect returns a new document whose children are deep copies of every
// maximal subtree of root matched by the set, in document order. Matches are
// reparented directly under the new root; nested matches inside a collected
// subtree are not visited again. root is not modified.
func Collect(root *html.Node, set selector.Set, observe Observer) (*html.Node, int) {
	dst := &html.Node{Type: html.DocumentNode}
	collected := 0

	w := dom.NewWalker(root)
	for n := w.Next(); n != nil; n = w.Next() {
		i := set.MatchIndex(n)
		if i < 0 {
			continue
		}

		if observe != nil {
			observe(Event{Mode: ModeWhitelist, Node: n, Selector: set.At(i)})
		}
		dst.AppendChild(dom.Clone(n))
		w.SkipChildren()
		collected++
	}

	return dst, collected
}
