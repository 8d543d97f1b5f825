package dom

import "golang.org/x/net/html"

// Walker iterates a tree in pre-order and lets the caller skip the
// children of the node most recently returned by Next.
//
// Children are expanded lazily on the following call to Next, so the caller
// may mutate the current node (including detaching its children) before
// moving on.
type Walker struct {
	stack   []*html.Node
	current *html.Node
	skip    bool
}

// NewWalker creates a walker rooted at n
func NewWalker(n *html.Node) *Walker {
	w := &Walker{}
	if n != nil {
		w.stack = append(w.stack, n)
	}
	return w
}

// Next returns the next node in document order, or nil when done
func (w *Walker) Next() *html.Node {
	if w.current != nil && !w.skip {
		for c := w.current.LastChild; c != nil; c = c.PrevSibling {
			w.stack = append(w.stack, c)
		}
	}
	w.current = nil
	w.skip = false

	if len(w.stack) == 0 {
		return nil
	}

	w.current = w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return w.current
}

// SkipChildren prevents the children of the current node from being visited
func (w *Walker) SkipChildren() {
	w.skip = true
}
