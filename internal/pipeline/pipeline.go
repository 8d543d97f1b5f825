// Package pipeline runs documents through parse, filter and index stages
// concurrently.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/element-filter/internal/extract"
	"github.com/bnema/element-filter/internal/fetcher"
	"github.com/bnema/element-filter/internal/filter"
	"github.com/bnema/element-filter/internal/index"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PageFetcher downloads remote pages
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// Stats tracks processing statistics
type Stats struct {
	Documents   int
	Failed      int
	Protected   int
	Whitelisted int
	Blacklisted int
	Passthrough int
	Pruned      int
	Collected   int
}

// Pipeline processes sources through the filter and indexer
type Pipeline struct {
	Filter  *filter.Filter
	Indexer *index.Indexer
	Fetcher PageFetcher
	Workers int
	Logger  *zap.Logger
}

type outcome struct {
	doc *index.Document
	res filter.Result
}

// Run processes every source and returns index documents in source order.
// Sources are http(s) URLs or local file paths. A source that cannot be
// loaded is logged and counted as failed; only cancellation aborts the run.
func (p *Pipeline) Run(ctx context.Context, sources []string) ([]index.Document, Stats, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := p.Workers
	if workers <= 0 {
		workers = 4
	}

	outcomes := make([]*outcome, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := p.process(ctx, src)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("document skipped", zap.String("source", src), zap.Error(err))
				return nil
			}

			logger.Debug("document filtered",
				zap.String("url", out.doc.URL),
				zap.Stringer("mode", out.res.Mode),
				zap.String("field", out.res.Field),
				zap.Int("pruned", out.res.Pruned),
				zap.Int("collected", out.res.Collected),
			)
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	docs := make([]index.Document, 0, len(sources))
	for _, out := range outcomes {
		if out == nil {
			stats.Failed++
			continue
		}
		stats.add(out.res)
		docs = append(docs, *out.doc)
	}

	return docs, stats, nil
}

func (s *Stats) add(res filter.Result) {
	s.Documents++
	s.Pruned += res.Pruned
	s.Collected += res.Collected

	switch res.Mode {
	case filter.ModeProtected:
		s.Protected++
	case filter.ModeWhitelist:
		s.Whitelisted++
	case filter.ModeBlacklist:
		s.Blacklisted++
	default:
		s.Passthrough++
	}
}

// process loads, filters and indexes one source
func (p *Pipeline) process(ctx context.Context, src string) (*outcome, error) {
	url, baseURL, body, err := p.read(ctx, src)
	if err != nil {
		return nil, err
	}

	parsed, err := Load(body)
	if err != nil {
		return nil, err
	}

	// The parse stage's own text; unfiltered documents keep it
	data := index.ParseData{
		URL:   url,
		Title: parsed.Title,
		Text:  extract.Text(parsed.Root),
	}

	res := p.Filter.Apply(filter.Document{
		URL:     url,
		BaseURL: baseURL,
		Root:    parsed.Root,
		Text:    data.Text,
	})
	data.Store(res)

	doc := p.Indexer.Build(data)
	return &outcome{doc: &doc, res: res}, nil
}

// read returns the document URL, base URL and body of a source
func (p *Pipeline) read(ctx context.Context, src string) (string, string, []byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if p.Fetcher == nil {
			return "", "", nil, fmt.Errorf("no fetcher configured for %s", src)
		}
		page, err := p.Fetcher.Fetch(ctx, src)
		if err != nil {
			return "", "", nil, err
		}
		return page.URL, page.FinalURL, page.Body, nil
	}

	path := strings.TrimPrefix(src, "file://")
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", nil, err
	}
	body, err := os.ReadFile(abs)
	if err != nil {
		return "", "", nil, err
	}
	u := "file://" + filepath.ToSlash(abs)
	return u, u, body, nil
}
