// Package index turns filtered parse output into documents for the indexer.
package index

import (
	"strconv"
	"strings"

	"github.com/bnema/element-filter/internal/filter"
	"github.com/cespare/xxhash/v2"
)

// ParseData is the output of the parse stage for one URL
type ParseData struct {
	URL   string
	Title string
	Text  string            // primary extracted text
	Meta  map[string]string // content metadata, holds the storage field
}

// Store writes a filter result into the field it names. Unfiltered results
// leave the parse data untouched.
func (p *ParseData) Store(res filter.Result) {
	if !res.Filtered() {
		return
	}

	if res.Field == filter.FieldContent {
		p.Text = res.Text
		return
	}

	if p.Meta == nil {
		p.Meta = make(map[string]string)
	}
	p.Meta[res.Field] = res.Text
}

// Document is what gets handed to the index
type Document struct {
	ID          string            `json:"id"`
	URL         string            `json:"url"`
	Title       string            `json:"title,omitempty"`
	Content     string            `json:"content"`
	ContentHash string            `json:"content_hash"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// Indexer builds index documents from parse data
type Indexer struct {
	storageField string
}

// New creates an indexer; storageField may be empty
func New(storageField string) *Indexer {
	return &Indexer{storageField: strings.TrimSpace(storageField)}
}

// Build creates the index document for one URL. The storage field is copied
// verbatim only when the parse stage recorded it.
func (ix *Indexer) Build(p ParseData) Document {
	doc := Document{
		ID:          p.URL,
		URL:         p.URL,
		Title:       p.Title,
		Content:     p.Text,
		ContentHash: Hash(p.Text),
	}

	if ix.storageField != "" {
		if v, ok := p.Meta[ix.storageField]; ok {
			doc.Fields = map[string]string{ix.storageField: v}
		}
	}

	return doc
}

// Hash returns the hex xxhash64 of s
func Hash(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
