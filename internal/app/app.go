// Package app wires the pipeline: scrape, dedup, classify, translate,
// score sentiment, publish. One cycle processes every source's batch;
// cycles never overlap.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/parisky90/DiscordBot/internal/cache"
	"github.com/parisky90/DiscordBot/internal/classify"
	"github.com/parisky90/DiscordBot/internal/config"
	"github.com/parisky90/DiscordBot/internal/dedup"
	"github.com/parisky90/DiscordBot/internal/discord"
	"github.com/parisky90/DiscordBot/internal/logger"
	"github.com/parisky90/DiscordBot/internal/metrics"
	"github.com/parisky90/DiscordBot/internal/ratelimit"
	"github.com/parisky90/DiscordBot/internal/scraper"
	"github.com/parisky90/DiscordBot/internal/sentiment"
)

// Classifier yields a significance verdict for one headline.
type Classifier interface {
	Classify(ctx context.Context, title string) (classify.Verdict, error)
}

// Translator translates one text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Publisher posts to the alert channel.
type Publisher interface {
	PublishEmbed(title, url, description string, color int) error
	PublishStatus(msg string) error
}

// Deps carries everything the bot needs. Translator may be nil, in which
// case alerts carry the original English text.
type Deps struct {
	Config     *config.Config
	Sources    []scraper.Source
	Classifier Classifier
	Translator Translator
	Publisher  Publisher
	Analyzer   *sentiment.Analyzer
	Dedup      *dedup.Engine
	Limits     *ratelimit.AILimiter
	Verdicts   *cache.VerdictCache
}

type Bot struct {
	deps Deps
}

type CycleStats struct {
	Processed int
	Posted    int
}

func New(deps Deps) *Bot {
	return &Bot{deps: deps}
}

// Run starts the scrape loop and the heartbeat, and blocks until ctx is
// cancelled. The headline being processed at cancellation time finishes.
func (b *Bot) Run(ctx context.Context) error {
	cfg := b.deps.Config

	if err := b.deps.Publisher.PublishStatus(fmt.Sprintf("Financial news bot online. Watching %d sources.", len(b.deps.Sources))); err != nil {
		logger.Warn("startup message failed", "error", err)
	}

	go b.heartbeatLoop(ctx)

	ticker := time.NewTicker(cfg.ScrapeInterval)
	defer ticker.Stop()

	for {
		stats := b.RunCycle(ctx)
		logger.Info("cycle complete", "processed", stats.Processed, "posted", stats.Posted)

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (b *Bot) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(b.deps.Config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := metrics.Global.GetStats()
			msg := fmt.Sprintf("Heartbeat: %v headlines processed, %v alerts posted, %v duplicates filtered.",
				stats["headlines_processed"], stats["alerts_posted"], stats["duplicates_filtered"])
			if err := b.deps.Publisher.PublishStatus(msg); err != nil {
				logger.Warn("heartbeat failed", "error", err)
			}
		}
	}
}

// RunCycle scrapes every source once and pushes each batch through the
// pipeline. Source batches are processed in name order.
func (b *Bot) RunCycle(ctx context.Context) CycleStats {
	start := time.Now()
	b.deps.Dedup.StartCycle()

	batches := scraper.FetchAll(ctx, b.deps.Sources, b.deps.Config.ScrapeConcurrency)

	names := make([]string, 0, len(batches))
	for name := range batches {
		names = append(names, name)
	}
	sort.Strings(names)

	var stats CycleStats
	for _, name := range names {
		// Scrapers list newest first; walk each batch backwards so the
		// oldest headline publishes first and wins the dedup windows.
		batch := batches[name]
		for i := len(batch) - 1; i >= 0; i-- {
			h := batch[i]
			if ctx.Err() != nil {
				return stats
			}
			stats.Processed++
			posted, err := b.processHeadline(ctx, name, h)
			if posted {
				stats.Posted++
			}
			if errors.Is(err, discord.ErrForbidden) {
				logger.Error("channel forbidden, skipping rest of batch", "source", name)
				break
			}
		}
	}

	metrics.Global.RecordCycleTime(time.Since(start))
	metrics.Global.SetLastRun()
	return stats
}

// processHeadline runs one headline through dedup, classification,
// translation, sentiment and publish. It reports whether an alert was
// posted; a non-nil error is only returned for conditions the caller must
// react to (channel permissions).
func (b *Bot) processHeadline(ctx context.Context, source string, h scraper.Headline) (posted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic processing headline", "source", source, "title", h.Title, "panic", r)
			metrics.Global.SetError(fmt.Sprintf("panic: %v", r))
		}
	}()

	metrics.Global.IncrementHeadlinesProcessed()

	result := b.deps.Dedup.CheckAndRecord(source, h.URL, h.Title)
	if result.Outcome != dedup.New {
		metrics.Global.IncrementDuplicatesFiltered()
		logger.Debug("duplicate filtered", "source", source, "title", h.Title, "outcome", result.Outcome.String())
		return false, nil
	}

	keywordHit := b.matchesKeyword(h.Title)
	verdict := b.classifyWithCache(ctx, h.Title)

	if !verdict.Significant && !keywordHit {
		return false, nil
	}
	if !verdict.Significant && keywordHit {
		if verdict.Category == classify.Unknown {
			verdict.Category = classify.General
		}
		if verdict.Reason == "" {
			verdict.Reason = "Matched user keyword"
		}
		logger.Info("keyword boost", "source", source, "title", h.Title)
	}

	body, ok := b.translateTitle(ctx, h.Title)
	if !ok {
		return false, nil
	}

	label, score := b.deps.Analyzer.Label(h.Title)

	description := body
	description += fmt.Sprintf("\n\n**Category:** %s | **Sentiment:** %s (%.2f)", verdict.Category, label, score)
	if verdict.Reason != "" {
		description += "\n**Reason:** " + verdict.Reason
	}
	description += "\n**Source:** " + source

	err = b.publishWithRetry(ctx, h.Title, h.URL, description, config.ColorFor(verdict.Category))
	if err != nil {
		if errors.Is(err, discord.ErrForbidden) {
			return false, err
		}
		logger.Error("publish failed", "source", source, "title", h.Title, "error", err)
		metrics.Global.SetError(err.Error())
		return false, nil
	}

	metrics.Global.IncrementAlertsPosted()
	logger.Info("alert posted", "source", source, "title", h.Title, "category", string(verdict.Category))
	return true, nil
}

func (b *Bot) matchesKeyword(title string) bool {
	if len(b.deps.Config.UserKeywords) == 0 {
		return false
	}
	lower := strings.ToLower(title)
	for kw := range b.deps.Config.UserKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// classifyWithCache returns the cached verdict when one exists; otherwise
// it spends classification budget. Any failure degrades to an
// insignificant Unknown verdict so a keyword match can still publish.
func (b *Bot) classifyWithCache(ctx context.Context, title string) classify.Verdict {
	norm := dedup.Normalize(title)

	if v, ok := b.deps.Verdicts.Get(norm); ok {
		metrics.Global.IncrementCacheHits()
		return v
	}

	if !b.deps.Limits.AllowClassify() {
		return classify.Verdict{Significant: false, Category: classify.Unknown}
	}

	v, err := b.deps.Classifier.Classify(ctx, title)
	if err != nil {
		metrics.Global.IncrementClassifyFailures()
		logger.Warn("classification failed", "title", title, "error", err)
		return classify.Verdict{Significant: false, Category: classify.Unknown}
	}

	b.deps.Verdicts.Set(norm, v)
	return v
}

// translateTitle returns the text to publish and whether to proceed. With
// no translator configured the original text goes out as-is; a failing
// translator drops the headline rather than posting untranslated text
// silently.
func (b *Bot) translateTitle(ctx context.Context, title string) (string, bool) {
	if b.deps.Translator == nil {
		return title, true
	}
	if !b.deps.Limits.AllowTranslate() {
		return title, true
	}

	translated, err := b.deps.Translator.Translate(ctx, title)
	if err != nil {
		metrics.Global.IncrementFailedTranslations()
		logger.Warn("translation failed", "title", title, "error", err)
		return "", false
	}
	return translated, true
}

// publishWithRetry posts the embed, honoring at most one Discord
// rate-limit wait, and throttles after every attempt.
func (b *Bot) publishWithRetry(ctx context.Context, title, url, description string, color int) error {
	err := b.deps.Publisher.PublishEmbed(title, url, description, color)
	b.throttle(ctx)

	var rl *discord.RateLimitedError
	if errors.As(err, &rl) {
		logger.Warn("rate limited by discord", "retry_after", rl.RetryAfter)
		if !sleepCtx(ctx, rl.RetryAfter) {
			return err
		}
		err = b.deps.Publisher.PublishEmbed(title, url, description, color)
		b.throttle(ctx)
	}
	return err
}

func (b *Bot) throttle(ctx context.Context) {
	sleepCtx(ctx, b.deps.Config.PostThrottle)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
