package scraper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// FeedsConfig is the YAML structure for extra RSS sources:
//
//	feeds:
//	  - name: Reuters Markets
//	    url: https://...
type FeedsConfig struct {
	Feeds []FeedEntry `yaml:"feeds"`
}

type FeedEntry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type feedSource struct {
	name   string
	url    string
	parser *gofeed.Parser
}

func (s *feedSource) Name() string { return s.name }

func (s *feedSource) Fetch(ctx context.Context) ([]Headline, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.name, err)
	}

	now := time.Now()
	var out []Headline
	for _, item := range feed.Items {
		title := collapseSpace(item.Title)
		if title == "" {
			continue
		}
		link := item.Link
		if link == "" {
			link = s.url
		}
		detected := now
		if item.PublishedParsed != nil {
			detected = *item.PublishedParsed
		}
		out = append(out, Headline{Title: title, URL: link, DetectedAt: detected})
		if len(out) >= maxHeadlinesPerSource {
			break
		}
	}
	return out, nil
}

// NewFeedSource wraps a single RSS/Atom feed as a Source.
func NewFeedSource(name, feedURL string, timeout time.Duration) Source {
	parser := gofeed.NewParser()
	parser.UserAgent = requestHeaders["User-Agent"]
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	parser.Client = &http.Client{Timeout: timeout}
	return &feedSource{name: name, url: feedURL, parser: parser}
}

// LoadFeedSources reads the feeds YAML and returns one Source per entry.
// A missing file is not an error; RSS feeds are optional.
func LoadFeedSources(path string, timeout time.Duration) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg FeedsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse feeds config %s: %w", path, err)
	}

	sources := make([]Source, 0, len(cfg.Feeds))
	for _, entry := range cfg.Feeds {
		if entry.Name == "" || entry.URL == "" {
			continue
		}
		sources = append(sources, NewFeedSource(entry.Name, entry.URL, timeout))
	}
	return sources, nil
}
