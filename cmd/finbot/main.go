package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/parisky90/DiscordBot/internal/app"
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
	"github.com/parisky90/DiscordBot/internal/translate"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limits := ratelimit.NewAILimiter(cfg.MaxClassifyPerDay, cfg.MaxTranslatePerDay, 0)

	if cfg.EnableHTTPMonitoring {
		go startMonitoringServer(cfg.MonitoringPort, limits)
	}

	var completer classify.Completer
	switch cfg.LLMProvider {
	case "gemini":
		gc, err := classify.NewGeminiChat(ctx, cfg.LLMAPIKey, cfg.LLMModel)
		if err != nil {
			log.Fatalf("gemini client: %v", err)
		}
		defer gc.Close()
		completer = gc
	default:
		completer = classify.NewOpenAIChat(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	}
	classifier := classify.New(completer, 0)

	var translator app.Translator
	if cfg.DeepLAPIKey != "" {
		deepl := translate.NewDeepL(cfg.DeepLAPIKey, cfg.RequestTimeout)
		translator = translate.New(deepl, cfg.NoTranslateTerms, cfg.TargetLang)
	} else {
		logger.Warn("DEEPL_API_KEY not set, alerts will carry original English text")
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	sources := scraper.DefaultSources(httpClient, cfg.RetryAttempts)
	feedSources, err := scraper.LoadFeedSources(cfg.FeedsConfigPath, cfg.RequestTimeout)
	if err != nil {
		logger.Warn("feeds config not loaded", "path", cfg.FeedsConfigPath, "error", err)
	}
	sources = append(sources, feedSources...)

	publisher, err := discord.New(cfg.DiscordBotToken, cfg.DiscordChannelID)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}
	if err := publisher.Open(); err != nil {
		log.Fatalf("discord: %v", err)
	}
	defer publisher.Close()

	bot := app.New(app.Deps{
		Config:     cfg,
		Sources:    sources,
		Classifier: classifier,
		Translator: translator,
		Publisher:  publisher,
		Analyzer:   sentiment.New(cfg.SentimentPositive, cfg.SentimentNegative),
		Dedup:      dedup.NewEngine(0, 0, cfg.FuzzyThreshold),
		Limits:     limits,
		Verdicts:   cache.NewVerdictCache(0),
	})

	logger.Info("starting bot", "sources", len(sources), "provider", cfg.LLMProvider, "model", cfg.LLMModel)
	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("bot: %v", err)
	}
}

func startMonitoringServer(port string, limits *ratelimit.AILimiter) {
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		stats := metrics.Global.GetStats()
		stats["ai_budgets"] = limits.GetStats()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	})

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
