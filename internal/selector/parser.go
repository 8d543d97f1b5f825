package selector

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors returned by the parser
var (
	ErrInvalidDiscriminator  = errors.New("invalid selector discriminator")
	ErrMissingAttributeValue = errors.New("attribute selector requires a value")
	ErrEmptyName             = errors.New("selector name is empty")
	ErrEmptySelector         = errors.New("selector is empty")
)

// Parser parses selector lists into selector sets
type Parser struct {
	stats Stats
}

// Stats tracks parsing statistics
type Stats struct {
	Compounds int
	Blank     int          // empty entries ignored in lists
	Kinds     map[Kind]int // atomic selectors per discriminator
}

// New creates a new parser
func New() *Parser {
	return &Parser{
		stats: Stats{
			Kinds: make(map[Kind]int),
		},
	}
}

// Stats returns parsing statistics
func (p *Parser) Stats() Stats {
	return p.stats
}

// ParseList parses a comma-separated list of compound selectors.
// Blank entries are skipped; the first invalid entry aborts parsing.
func (p *Parser) ParseList(list string) (Set, error) {
	var selectors []Compound

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			p.stats.Blank++
			continue
		}

		c, err := p.Parse(entry)
		if err != nil {
			return Set{}, fmt.Errorf("selector %q: %w", entry, err)
		}
		selectors = append(selectors, c)
	}

	return Set{selectors: selectors}, nil
}

// Parse parses a single compound selector such as div.foo#bar[data-x=1]
func (p *Parser) Parse(s string) (Compound, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySelector
	}

	var c Compound
	for pos := 0; pos < len(s); {
		a, next, err := parseToken(s, pos)
		if err != nil {
			return nil, err
		}
		c = append(c, a)
		pos = next
	}

	p.stats.Compounds++
	for _, a := range c {
		p.stats.Kinds[a.Kind]++
	}
	return c, nil
}

// parseToken reads one <discriminator><name>[=<value>]] token starting at pos
// and returns the selector and the position after it
func parseToken(s string, pos int) (Atomic, int, error) {
	kind := KindType
	switch s[pos] {
	case '#':
		kind = KindID
		pos++
	case '.':
		kind = KindClass
		pos++
	case '[':
		kind = KindAttribute
		pos++
	default:
		// Type selectors are only recognised at the start of an entry
		if pos != 0 || !isNameChar(s[pos]) {
			return Atomic{}, pos, fmt.Errorf("%w %q at offset %d (only \"#\", \".\", \"[\" or a leading tag name are allowed)",
				ErrInvalidDiscriminator, s[pos], pos)
		}
	}

	start := pos
	for pos < len(s) && isNameChar(s[pos]) {
		pos++
	}
	name := s[start:pos]
	if name == "" {
		return Atomic{}, pos, fmt.Errorf("%w after %s discriminator at offset %d", ErrEmptyName, kind, start)
	}

	switch kind {
	case KindType:
		return Type(name), pos, nil
	case KindID:
		return ID(name), pos, nil
	case KindClass:
		return Class(name), pos, nil
	}

	// Attribute: =value] is mandatory
	if pos >= len(s) || s[pos] != '=' {
		return Atomic{}, pos, fmt.Errorf("%w: [%s", ErrMissingAttributeValue, name)
	}
	end := strings.IndexByte(s[pos:], ']')
	if end < 0 {
		return Atomic{}, pos, fmt.Errorf("%w: [%s is not terminated", ErrMissingAttributeValue, name)
	}
	value := unquote(strings.TrimSpace(s[pos+1 : pos+end]))
	if value == "" {
		return Atomic{}, pos, fmt.Errorf("%w: [%s=]", ErrMissingAttributeValue, name)
	}

	return Attribute(name, value), pos + end + 1, nil
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_'
}

// unquote strips one pair of matching single or double quotes
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseList parses a selector list with a throwaway parser
func ParseList(list string) (Set, error) {
	return New().ParseList(list)
}

// MustParseList is like ParseList but panics on error
func MustParseList(list string) Set {
	s, err := ParseList(list)
	if err != nil {
		panic(err)
	}
	return s
}
