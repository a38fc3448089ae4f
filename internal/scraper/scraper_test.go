package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const finvizFixture = `<html><body>
<table class="news-table">
<tr><td>08:30AM</td><td><a class="nn-tab-link" href="/news/1.html">Fed holds rates steady</a></td></tr>
<tr><td>08:15AM</td><td><a class="tab-link-news" href="https://example.com/abs">Oil   prices  jump</a></td></tr>
<tr><td>08:00AM</td><td><a class="nn-tab-link" href="/news/3.html">  </a></td></tr>
</table>
</body></html>`

func TestHTMLSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected browser User-Agent header")
		}
		fmt.Fprint(w, finvizFixture)
	}))
	defer srv.Close()

	src := NewHTMLSource("Finviz", srv.URL, "https://finviz.com/", extractFinviz, srv.Client(), 1)
	headlines, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(headlines))
	}
	if headlines[0].Title != "Fed holds rates steady" {
		t.Errorf("title = %q", headlines[0].Title)
	}
	if headlines[0].URL != "https://finviz.com/news/1.html" {
		t.Errorf("relative URL not resolved: %q", headlines[0].URL)
	}
	if headlines[1].Title != "Oil prices jump" {
		t.Errorf("whitespace not collapsed: %q", headlines[1].Title)
	}
	if headlines[1].URL != "https://example.com/abs" {
		t.Errorf("absolute URL rewritten: %q", headlines[1].URL)
	}
	if headlines[0].DetectedAt.IsZero() {
		t.Error("DetectedAt not set")
	}
}

func TestHTMLSourceCapsHeadlines(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="news-table">`)
	for i := 0; i < maxHeadlinesPerSource+5; i++ {
		fmt.Fprintf(&sb, `<tr><td><a class="nn-tab-link" href="/n/%d">Headline %d</a></td></tr>`, i, i)
	}
	sb.WriteString(`</table></body></html>`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sb.String())
	}))
	defer srv.Close()

	src := NewHTMLSource("Finviz", srv.URL, "https://finviz.com/", extractFinviz, srv.Client(), 1)
	headlines, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(headlines) != maxHeadlinesPerSource {
		t.Fatalf("expected cap of %d, got %d", maxHeadlinesPerSource, len(headlines))
	}
}

func TestHTMLSourceNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewHTMLSource("Finviz", srv.URL, "https://finviz.com/", extractFinviz, srv.Client(), 1)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on 403 response")
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, finvizFixture)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	sources := []Source{
		NewHTMLSource("Good", good.URL, "https://finviz.com/", extractFinviz, good.Client(), 1),
		NewHTMLSource("Bad", bad.URL, "https://finviz.com/", extractFinviz, bad.Client(), 1),
	}
	results := FetchAll(context.Background(), sources, 2)

	if len(results) != 2 {
		t.Fatalf("expected an entry per source, got %d", len(results))
	}
	if len(results["Good"]) != 2 {
		t.Errorf("Good: expected 2 headlines, got %d", len(results["Good"]))
	}
	if len(results["Bad"]) != 0 {
		t.Errorf("Bad: expected empty result, got %d", len(results["Bad"]))
	}
}

func TestExtractCNBCPrefersTitleElement(t *testing.T) {
	const page = `<html><body>
<li class="LatestNews-item"><a href="/2026/story.html"><span class="LatestNews-headline">Dollar slides on jobs data</span></a></li>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	src := NewHTMLSource("CNBC", srv.URL, "https://www.cnbc.com", extractCNBC, srv.Client(), 1)
	headlines, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(headlines) != 1 {
		t.Fatalf("expected 1 headline, got %d", len(headlines))
	}
	if headlines[0].Title != "Dollar slides on jobs data" {
		t.Errorf("title = %q", headlines[0].Title)
	}
	if headlines[0].URL != "https://www.cnbc.com/2026/story.html" {
		t.Errorf("url = %q", headlines[0].URL)
	}
}

func TestLoadFeedSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yaml")
	content := "feeds:\n  - name: Reuters Markets\n    url: https://example.com/rss\n  - name: \"\"\n    url: https://example.com/skip\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadFeedSources(path, 5*time.Second)
	if err != nil {
		t.Fatalf("LoadFeedSources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Name() != "Reuters Markets" {
		t.Errorf("name = %q", sources[0].Name())
	}
}

func TestLoadFeedSourcesMissingFile(t *testing.T) {
	sources, err := LoadFeedSources(filepath.Join(t.TempDir(), "absent.yaml"), time.Second)
	if err != nil {
		t.Fatalf("missing feeds file should not error: %v", err)
	}
	if sources != nil {
		t.Errorf("expected nil sources, got %v", sources)
	}
}

func TestFeedSourceFetch(t *testing.T) {
	const feed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Test</title>
<item><title>ECB cuts rates</title><link>https://example.com/ecb</link></item>
<item><title></title><link>https://example.com/empty</link></item>
</channel></rss>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feed)
	}))
	defer srv.Close()

	src := NewFeedSource("Test Feed", srv.URL, 5*time.Second)
	headlines, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(headlines) != 1 {
		t.Fatalf("expected 1 headline, got %d", len(headlines))
	}
	if headlines[0].Title != "ECB cuts rates" || headlines[0].URL != "https://example.com/ecb" {
		t.Errorf("got %+v", headlines[0])
	}
}
