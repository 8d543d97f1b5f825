package selector

import (
	"strings"

	"golang.org/x/net/html"
)

// Kind is the discriminator of an atomic selector
type Kind int

const (
	KindType Kind = iota
	KindID
	KindClass
	KindAttribute
)

// String returns the discriminator prefix used in selector text
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindID:
		return "id"
	case KindClass:
		return "class"
	case KindAttribute:
		return "attribute"
	}
	return "unknown"
}

// Atomic is a single match condition on one node.
// Name holds the tag, id, class or attribute name; Value is only used by
// attribute selectors.
type Atomic struct {
	Kind  Kind
	Name  string
	Value string
}

// Type returns a tag name selector
func Type(name string) Atomic {
	return Atomic{Kind: KindType, Name: name}
}

// ID returns an id selector
func ID(value string) Atomic {
	return Atomic{Kind: KindID, Name: value}
}

// Class returns a class membership selector
func Class(value string) Atomic {
	return Atomic{Kind: KindClass, Name: strings.ToLower(value)}
}

// Attribute returns an attribute name/value selector
func Attribute(name, value string) Atomic {
	return Atomic{Kind: KindAttribute, Name: name, Value: value}
}

// Matches reports whether the node satisfies the selector
func (a Atomic) Matches(n *html.Node) bool {
	if n == nil {
		return false
	}

	switch a.Kind {
	case KindType:
		return n.Type == html.ElementNode && strings.EqualFold(n.Data, a.Name)
	case KindID:
		id, ok := attr(n, "id")
		return ok && strings.EqualFold(id, a.Name)
	case KindClass:
		classes, ok := attr(n, "class")
		if !ok {
			return false
		}
		for _, c := range strings.Fields(strings.ToLower(classes)) {
			if c == a.Name {
				return true
			}
		}
		return false
	case KindAttribute:
		for _, at := range n.Attr {
			if strings.EqualFold(at.Key, a.Name) && strings.EqualFold(at.Val, a.Value) {
				return true
			}
		}
		return false
	}
	return false
}

// String renders the selector in the configuration syntax
func (a Atomic) String() string {
	switch a.Kind {
	case KindID:
		return "#" + a.Name
	case KindClass:
		return "." + a.Name
	case KindAttribute:
		return "[" + a.Name + "=" + a.Value + "]"
	}
	return a.Name
}

// attr returns the value of the first attribute named key, ignoring case
func attr(n *html.Node, key string) (string, bool) {
	for _, at := range n.Attr {
		if strings.EqualFold(at.Key, key) {
			return at.Val, true
		}
	}
	return "", false
}
