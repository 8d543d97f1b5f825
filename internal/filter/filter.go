// Package filter applies blacklist and whitelist selector sets to parsed
// HTML documents and produces the text handed to the indexer.
package filter

import (
	"strings"

	"github.com/bnema/element-filter/internal/dom"
	"github.com/bnema/element-filter/internal/extract"
	"github.com/bnema/element-filter/internal/models"
	"github.com/bnema/element-filter/internal/selector"
	"golang.org/x/net/html"
)

// FieldContent is the primary extracted-text field
const FieldContent = "content"

// Mode describes how a document was filtered
type Mode int

const (
	ModePassthrough Mode = iota
	ModeProtected
	ModeWhitelist
	ModeBlacklist
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeProtected:
		return "protected"
	case ModeWhitelist:
		return "whitelist"
	case ModeBlacklist:
		return "blacklist"
	}
	return "passthrough"
}

// Event is reported to an Observer for every matched node
type Event struct {
	Mode     Mode
	Node     *html.Node
	Selector selector.Compound
}

// Observer receives match events when tracing is enabled
type Observer func(Event)

// Config holds the compiled filter configuration
type Config struct {
	Blacklist     selector.Set
	Whitelist     selector.Set
	StorageField  string
	ProtectedURLs map[string]struct{}
}

// Document is the per-document input handed over by the parse stage
type Document struct {
	URL     string
	BaseURL string
	Root    *html.Node
	Text    string // text produced by the upstream parser, if any
}

// Result is the filtered text and where it must be stored
type Result struct {
	Mode      Mode
	Text      string
	Field     string
	Pruned    int
	Collected int
}

// Filtered returns true if selectors were applied to the document
func (r Result) Filtered() bool {
	return r.Mode == ModeWhitelist || r.Mode == ModeBlacklist
}

// Filter selects and runs the filtering mode for each document.
// A Filter is immutable after New and safe for concurrent use.
type Filter struct {
	cfg     Config
	observe Observer
}

// Option configures a Filter
type Option func(*Filter)

// WithObserver enables match tracing
func WithObserver(o Observer) Option {
	return func(f *Filter) {
		f.observe = o
	}
}

// New creates a filter from a compiled configuration
func New(cfg Config, opts ...Option) *Filter {
	protected := make(map[string]struct{}, len(cfg.ProtectedURLs))
	for u := range cfg.ProtectedURLs {
		protected[u] = struct{}{}
	}
	cfg.ProtectedURLs = protected
	cfg.StorageField = strings.TrimSpace(cfg.StorageField)

	f := &Filter{cfg: cfg}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromConfig compiles the selector configuration. An invalid selector is a
// configuration error and must abort startup.
func FromConfig(cfg models.SelectorConfig, opts ...Option) (*Filter, error) {
	blacklist, err := selector.ParseList(cfg.Blacklist)
	if err != nil {
		return nil, &ConfigError{Key: "selector.blacklist", Err: err}
	}

	whitelist, err := selector.ParseList(cfg.Whitelist)
	if err != nil {
		return nil, &ConfigError{Key: "selector.whitelist", Err: err}
	}

	return New(Config{
		Blacklist:     blacklist,
		Whitelist:     whitelist,
		StorageField:  cfg.StorageField,
		ProtectedURLs: ParseURLList(cfg.ProtectedURLs),
	}, opts...), nil
}

// ParseURLList splits a comma-separated URL list into an exact-match set
func ParseURLList(list string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, u := range strings.Split(list, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			set[u] = struct{}{}
		}
	}
	return set
}

// Config returns the compiled configuration
func (f *Filter) Config() Config {
	return f.cfg
}

// Protected reports whether either URL is exempt from filtering
func (f *Filter) Protected(url, baseURL string) bool {
	if _, ok := f.cfg.ProtectedURLs[url]; ok {
		return true
	}
	_, ok := f.cfg.ProtectedURLs[baseURL]
	return ok
}

// Mode returns the mode that Apply will use for the given URLs
func (f *Filter) Mode(url, baseURL string) Mode {
	switch {
	case f.Protected(url, baseURL):
		return ModeProtected
	case !f.cfg.Whitelist.Empty():
		return ModeWhitelist
	case !f.cfg.Blacklist.Empty():
		return ModeBlacklist
	}
	return ModePassthrough
}

// Apply filters one document and returns the text to index.
// The document tree is never modified.
func (f *Filter) Apply(doc Document) Result {
	res := Result{Mode: f.Mode(doc.URL, doc.BaseURL), Field: FieldContent}

	switch res.Mode {
	case ModeWhitelist:
		var dst *html.Node
		dst, res.Collected = Collect(doc.Root, f.cfg.Whitelist, f.observe)
		res.Text = extract.Text(dst)
	case ModeBlacklist:
		private := dom.Clone(doc.Root)
		res.Pruned = Prune(private, f.cfg.Blacklist, f.observe)
		res.Text = extract.Text(private)
	default:
		res.Text = doc.Text
		if res.Text == "" {
			res.Text = extract.Text(doc.Root)
		}
		return res
	}

	if f.cfg.StorageField != "" {
		res.Field = f.cfg.StorageField
	}
	return res
}
