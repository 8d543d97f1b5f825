package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bnema/element-filter/internal/models"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// Page is a downloaded HTML page decoded to UTF-8
type Page struct {
	URL      string // requested URL
	FinalURL string // URL after redirects, used as the base URL
	Body     []byte
}

// Fetcher downloads HTML pages
type Fetcher struct {
	client  *http.Client
	retries int
	backoff time.Duration
	rate    rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a new fetcher from config
func New(cfg models.HTTPConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	retries := cfg.Retries
	if retries == 0 {
		retries = 3
	}

	limit := rate.Inf
	if cfg.RatePerHost > 0 {
		limit = rate.Limit(cfg.RatePerHost)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		retries:  retries,
		backoff:  time.Second,
		rate:     limit,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch downloads a page with retries
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	var lastErr error

	for i := 0; i < f.retries; i++ {
		if i > 0 {
			// Linear backoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i) * f.backoff):
			}
		}

		if err := f.limiter(u.Host).Wait(ctx); err != nil {
			return nil, err
		}

		page, err := f.doFetch(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed after %d retries: %w", f.retries, lastErr)
}

// limiter returns the rate limiter for a host
func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(f.rate, 1)
		f.limiters[host] = l
	}
	return l
}

func (f *Fetcher) doFetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "element-filter/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &Page{
		URL:      rawURL,
		FinalURL: resp.Request.URL.String(),
		Body:     body,
	}, nil
}
