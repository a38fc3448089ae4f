// Package scraper collects financial news headlines from the configured
// sites and RSS feeds. Extraction is best-effort: selectors that stop
// matching yield an empty list, not an error.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/parisky90/DiscordBot/internal/logger"
	"github.com/parisky90/DiscordBot/internal/retry"
)

// Headline is one scraped news item. Identity for dedup purposes is
// source+URL; the struct itself is immutable once produced.
type Headline struct {
	Title      string
	URL        string
	DetectedAt time.Time
}

// Source yields headlines, newest first, capped at maxHeadlinesPerSource.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Headline, error)
}

const maxHeadlinesPerSource = 15

// Browser-mimicking headers; several of these sites serve bot traffic an
// empty shell otherwise.
var requestHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
}

type extractFunc func(doc *goquery.Document, pageURL, baseURL string) []Headline

type htmlSource struct {
	name     string
	url      string
	baseURL  string
	extract  extractFunc
	client   *http.Client
	attempts int
}

func (s *htmlSource) Name() string { return s.name }

func (s *htmlSource) Fetch(ctx context.Context) ([]Headline, error) {
	body, err := fetchHTML(ctx, s.client, s.url, s.attempts)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML from %s: %w", s.name, err)
	}

	headlines := s.extract(doc, s.url, s.baseURL)
	if len(headlines) > maxHeadlinesPerSource {
		headlines = headlines[:maxHeadlinesPerSource]
	}
	logger.Debug("scraped source", "source", s.name, "headlines", len(headlines))
	return headlines, nil
}

func fetchHTML(ctx context.Context, client *http.Client, pageURL string, attempts int) (io.ReadCloser, error) {
	var body io.ReadCloser

	err := retry.WithRetry(ctx, retry.Config{MaxAttempts: attempts, Delay: 2 * time.Second, Backoff: true}, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return err
		}
		for k, v := range requestHeaders {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("status %d fetching %s", resp.StatusCode, pageURL)
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// absoluteURL resolves href against base, falling back to the page URL for
// anything unparseable.
func absoluteURL(baseURL, href, pageURL string) string {
	if href == "" {
		return pageURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return pageURL
	}
	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}
	return base.ResolveReference(ref).String()
}

// FetchAll fans out over all sources with bounded concurrency. A failing
// source is logged and reported as an empty list; the cycle always gets a
// result for every source.
func FetchAll(ctx context.Context, sources []Source, concurrency int) map[string][]Headline {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make(map[string][]Headline, len(sources))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for _, src := range sources {
		g.Go(func() error {
			headlines, err := src.Fetch(ctx)
			if err != nil {
				logger.Error("source fetch failed", "source", src.Name(), "error", err)
				headlines = nil
			}
			mu.Lock()
			results[src.Name()] = headlines
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
