package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/parisky90/DiscordBot/internal/classify"
)

type Config struct {
	// Discord settings
	DiscordBotToken  string
	DiscordChannelID string

	// Scheduling
	ScrapeInterval    time.Duration
	HeartbeatInterval time.Duration
	PostThrottle      time.Duration

	// LLM settings
	LLMProvider string // "openai" (any OpenAI-compatible endpoint, incl. Ollama) or "gemini"
	LLMModel    string
	LLMBaseURL  string
	LLMAPIKey   string

	// DeepL settings; translation is skipped when the key is empty
	DeepLAPIKey string
	TargetLang  string

	// Behaviour settings
	UserKeywords       map[string]bool
	FuzzyThreshold     int
	SentimentPositive  float64
	SentimentNegative  float64
	NoTranslateTerms   []string
	MaxClassifyPerDay  int
	MaxTranslatePerDay int

	// Scraper settings
	FeedsConfigPath   string
	ScrapeConcurrency int
	RequestTimeout    time.Duration
	RetryAttempts     int

	// App settings
	Debug                bool
	EnableHTTPMonitoring bool
	MonitoringPort       string
}

// defaultNoTranslateTerms are kept verbatim through translation. Load sorts
// them longest-first so overlapping terms ("federal reserve" vs "fed") mask
// correctly.
var defaultNoTranslateTerms = []string{
	"fomc", "fed", "ecb", "boj", "boe", "opec", "sec", "esma",
	"cpi", "nfp", "gdp", "pmi", "ism",
	"eur/usd", "usd/jpy", "gbp/usd", "usd/chf", "aud/usd", "usd/cad",
	"btc", "eth", "xrp", "sol", "ada",
	"aapl", "msft", "goog", "googl", "amzn", "nvda", "tsla", "meta",
	"jpm", "bac", "wfc", "gs",
	"xom", "cvx",
	"bitcoin", "ethereum", "nvidia", "tesla", "microsoft", "apple", "amazon", "google",
	"federal reserve", "european central bank",
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ScrapeInterval:    time.Duration(getEnvIntOrDefault("SCRAPE_INTERVAL_SECONDS", 60)) * time.Second,
		HeartbeatInterval: time.Duration(getEnvIntOrDefault("HEARTBEAT_INTERVAL_MINUTES", 10)) * time.Minute,
		PostThrottle:      time.Duration(getEnvIntOrDefault("POST_THROTTLE_SECONDS", 2)) * time.Second,

		LLMProvider: getEnvOrDefault("LLM_PROVIDER", "openai"),
		LLMModel:    getEnvOrDefault("LLM_MODEL", "llama3"),
		LLMBaseURL:  getEnvOrDefault("LLM_BASE_URL", "http://localhost:11434/v1"),

		TargetLang: getEnvOrDefault("TARGET_LANG", "EL"),

		FuzzyThreshold:     getEnvIntOrDefault("FUZZY_MATCH_THRESHOLD", 88),
		SentimentPositive:  getEnvFloatOrDefault("SENTIMENT_POSITIVE_THRESHOLD", 0.1),
		SentimentNegative:  getEnvFloatOrDefault("SENTIMENT_NEGATIVE_THRESHOLD", -0.1),
		NoTranslateTerms:   sortTermsLongestFirst(defaultNoTranslateTerms),
		MaxClassifyPerDay:  getEnvIntOrDefault("MAX_CLASSIFY_PER_DAY", 0),
		MaxTranslatePerDay: getEnvIntOrDefault("MAX_TRANSLATE_PER_DAY", 0),

		FeedsConfigPath:   getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		ScrapeConcurrency: getEnvIntOrDefault("SCRAPE_CONCURRENCY", 4),
		RequestTimeout:    time.Duration(getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 20)) * time.Second,
		RetryAttempts:     getEnvIntOrDefault("RETRY_ATTEMPTS", 3),

		MonitoringPort: getEnvOrDefault("MONITORING_PORT", "8080"),
	}

	cfg.DiscordBotToken = os.Getenv("DISCORD_BOT_TOKEN")
	cfg.DiscordChannelID = os.Getenv("DISCORD_CHANNEL_ID")
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if cfg.LLMAPIKey == "" {
		switch cfg.LLMProvider {
		case "gemini":
			cfg.LLMAPIKey = os.Getenv("GEMINI_API_KEY")
		default:
			cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	cfg.DeepLAPIKey = os.Getenv("DEEPL_API_KEY")

	cfg.UserKeywords = parseKeywords(os.Getenv("USER_KEYWORDS"))

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		cfg.EnableHTTPMonitoring = true
	}

	return cfg, cfg.Validate()
}

// sortTermsLongestFirst copies the terms sorted by descending length, ties
// alphabetical. The translator masks in slice order, so multi-word terms
// must precede their substrings.
func sortTermsLongestFirst(terms []string) []string {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

func parseKeywords(raw string) map[string]bool {
	keywords := make(map[string]bool)
	for _, k := range strings.Split(raw, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords[k] = true
		}
	}
	return keywords
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DiscordBotToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required")
	}
	if _, err := strconv.ParseUint(c.DiscordChannelID, 10, 64); err != nil {
		return fmt.Errorf("DISCORD_CHANNEL_ID must be a numeric snowflake: %w", err)
	}
	if c.LLMProvider != "openai" && c.LLMProvider != "gemini" {
		return fmt.Errorf("LLM_PROVIDER must be 'openai' or 'gemini'")
	}
	if c.LLMProvider == "gemini" && c.LLMAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
	}
	if c.FuzzyThreshold < 1 || c.FuzzyThreshold > 100 {
		return fmt.Errorf("FUZZY_MATCH_THRESHOLD must be between 1 and 100")
	}
	if c.SentimentNegative > c.SentimentPositive {
		return fmt.Errorf("SENTIMENT_NEGATIVE_THRESHOLD must not exceed SENTIMENT_POSITIVE_THRESHOLD")
	}
	return nil
}

// Embed colors per category, matching the standard Discord palette.
var categoryColors = map[classify.Category]int{
	classify.Stocks:      0x3498db,
	classify.Economy:     0xf1c40f,
	classify.Forex:       0x9b59b6,
	classify.Crypto:      0xe67e22,
	classify.Geopolitics: 0xe74c3c,
	classify.Commodities: 0x1f8b4c,
	classify.General:     0x979c9f,
	classify.Unknown:     0x546e7a,
}

const defaultColor = 0x5865f2

// ColorFor returns the embed color for a category.
func ColorFor(c classify.Category) int {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return defaultColor
}
