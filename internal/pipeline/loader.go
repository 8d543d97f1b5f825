package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parsed is an HTML page as handed over by the parse stage
type Parsed struct {
	Root  *html.Node
	Title string
}

// Load parses an HTML page and looks up its title
func Load(body []byte) (*Parsed, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("failed to parse HTML: empty document")
	}

	return &Parsed{
		Root:  doc.Nodes[0],
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	}, nil
}
