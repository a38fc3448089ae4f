package scraper

import (
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Site selectors break whenever these pages get redesigned. Keep them in
// one place so updating a source is a one-line change.

func extractMarketWatch(doc *goquery.Document, pageURL, baseURL string) []Headline {
	now := time.Now()
	var out []Headline
	doc.Find("div.element--article, div.article__content").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		link := article.Find("h3.article__headline > a.link, h3.article__headline > a.article__link, a.link, a[href]").First()
		title := collapseSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		out = append(out, Headline{Title: title, URL: absoluteURL(baseURL, href, pageURL), DetectedAt: now})
		return len(out) < maxHeadlinesPerSource
	})
	return out
}

func extractCNBC(doc *goquery.Document, pageURL, baseURL string) []Headline {
	now := time.Now()
	var out []Headline
	doc.Find(`div.Card-standardBreakerCard, div.Card-titleContainer, li.LatestNews-item, div[class*="RiverCard-container"]`).EachWithBreak(func(_ int, article *goquery.Selection) bool {
		link := article.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		title := collapseSpace(article.Find(`.Card-title, .LatestNews-headline, [class*="RiverHeadline-headline"]`).First().Text())
		if title == "" {
			title = collapseSpace(link.Text())
		}
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		out = append(out, Headline{Title: title, URL: absoluteURL(baseURL, href, pageURL), DetectedAt: now})
		return len(out) < maxHeadlinesPerSource
	})
	return out
}

func extractYahooFinance(doc *goquery.Document, pageURL, baseURL string) []Headline {
	now := time.Now()
	links := doc.Find("li.js-stream-content h3 a[href]")
	if links.Length() == 0 {
		links = doc.Find(`div[class*="stream-item"] a[href]`)
	}
	var out []Headline
	links.EachWithBreak(func(_ int, link *goquery.Selection) bool {
		title := collapseSpace(link.Text())
		// Skip the page's own navigation links.
		if title == "" || strings.HasPrefix(strings.ToLower(title), "yahoo finance") {
			return true
		}
		href, _ := link.Attr("href")
		out = append(out, Headline{Title: title, URL: absoluteURL(baseURL, href, pageURL), DetectedAt: now})
		return len(out) < maxHeadlinesPerSource
	})
	return out
}

func extractFinviz(doc *goquery.Document, pageURL, baseURL string) []Headline {
	now := time.Now()
	var out []Headline
	doc.Find("table.news-table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("td a.nn-tab-link, td a.tab-link-news").First()
		title := collapseSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		out = append(out, Headline{Title: title, URL: absoluteURL(baseURL, href, pageURL), DetectedAt: now})
		return len(out) < maxHeadlinesPerSource
	})
	return out
}

func extractSeekingAlpha(doc *goquery.Document, pageURL, baseURL string) []Headline {
	now := time.Now()
	var out []Headline
	doc.Find(`article[data-test-id="post-list-item"] a[data-test-id="post-list-item-title"], div[class*="media-body"] a[href]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		title := collapseSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		out = append(out, Headline{Title: title, URL: absoluteURL(baseURL, href, pageURL), DetectedAt: now})
		return len(out) < maxHeadlinesPerSource
	})
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DefaultSources returns the built-in HTML sources.
func DefaultSources(client *http.Client, retryAttempts int) []Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if retryAttempts <= 0 {
		retryAttempts = 3
	}
	mk := func(name, pageURL, baseURL string, extract extractFunc) Source {
		return &htmlSource{name: name, url: pageURL, baseURL: baseURL, extract: extract, client: client, attempts: retryAttempts}
	}
	return []Source{
		mk("MarketWatch", "https://www.marketwatch.com/latest-news", "https://www.marketwatch.com", extractMarketWatch),
		mk("CNBC", "https://www.cnbc.com/world/?region=world", "https://www.cnbc.com", extractCNBC),
		mk("Yahoo Finance", "https://finance.yahoo.com/topic/stock-market-news/", "https://finance.yahoo.com", extractYahooFinance),
		mk("Finviz", "https://finviz.com/news.ashx", "https://finviz.com/", extractFinviz),
		mk("Seeking Alpha", "https://seekingalpha.com/market-news", "https://seekingalpha.com", extractSeekingAlpha),
	}
}

// NewHTMLSource builds a custom selector-driven source for tests and for
// sources added without a dedicated extractor.
func NewHTMLSource(name, pageURL, baseURL string, extract extractFunc, client *http.Client, retryAttempts int) Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if retryAttempts <= 0 {
		retryAttempts = 1
	}
	return &htmlSource{name: name, url: pageURL, baseURL: baseURL, extract: extract, client: client, attempts: retryAttempts}
}
