package selector

import (
	"strings"

	"golang.org/x/net/html"
)

// Compound is a conjunction of atomic selectors parsed from one entry
type Compound []Atomic

// Matches reports whether every atomic selector matches the node.
// An empty compound matches everything; the parser never builds one.
func (c Compound) Matches(n *html.Node) bool {
	for _, a := range c {
		if !a.Matches(n) {
			return false
		}
	}
	return true
}

// String renders the compound selector in the configuration syntax
func (c Compound) String() string {
	var b strings.Builder
	for _, a := range c {
		b.WriteString(a.String())
	}
	return b.String()
}

// Set is a disjunction of compound selectors (a blacklist or a whitelist).
// A Set is never modified after parsing and can be shared between goroutines.
type Set struct {
	selectors []Compound
}

// NewSet creates a set from already built compound selectors
func NewSet(selectors ...Compound) Set {
	s := make([]Compound, len(selectors))
	copy(s, selectors)
	return Set{selectors: s}
}

// Matches reports whether any compound selector in the set matches the node
func (s Set) Matches(n *html.Node) bool {
	return s.MatchIndex(n) >= 0
}

// MatchIndex returns the index of the first matching selector, or -1
func (s Set) MatchIndex(n *html.Node) int {
	for i, c := range s.selectors {
		if c.Matches(n) {
			return i
		}
	}
	return -1
}

// At returns the compound selector at index i
func (s Set) At(i int) Compound {
	return s.selectors[i]
}

// Len returns the number of compound selectors
func (s Set) Len() int {
	return len(s.selectors)
}

// Empty returns true if the set has no selectors
func (s Set) Empty() bool {
	return len(s.selectors) == 0
}

// String renders the set as a comma-separated list
func (s Set) String() string {
	parts := make([]string, len(s.selectors))
	for i, c := range s.selectors {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
