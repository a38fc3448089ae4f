package config

import (
	"testing"

	"github.com/parisky90/DiscordBot/internal/classify"
)

func validConfig() *Config {
	return &Config{
		DiscordBotToken:   "token",
		DiscordChannelID:  "123456789012345678",
		LLMProvider:       "openai",
		FuzzyThreshold:    88,
		SentimentPositive: 0.1,
		SentimentNegative: -0.1,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.DiscordBotToken = "" }},
		{"missing channel", func(c *Config) { c.DiscordChannelID = "" }},
		{"non-numeric channel", func(c *Config) { c.DiscordChannelID = "general" }},
		{"bad provider", func(c *Config) { c.LLMProvider = "cohere" }},
		{"gemini without key", func(c *Config) { c.LLMProvider = "gemini"; c.LLMAPIKey = "" }},
		{"threshold too low", func(c *Config) { c.FuzzyThreshold = 0 }},
		{"threshold too high", func(c *Config) { c.FuzzyThreshold = 101 }},
		{"inverted sentiment thresholds", func(c *Config) { c.SentimentNegative = 0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseKeywords(t *testing.T) {
	got := parseKeywords(" Tesla, BITCOIN ,,  fed ")
	want := []string{"tesla", "bitcoin", "fed"}
	if len(got) != len(want) {
		t.Fatalf("got %d keywords, want %d: %v", len(got), len(want), got)
	}
	for _, k := range want {
		if !got[k] {
			t.Errorf("missing keyword %q", k)
		}
	}

	if len(parseKeywords("")) != 0 {
		t.Error("empty input should yield no keywords")
	}
}

func TestProtectedTermsSortedLongestFirst(t *testing.T) {
	terms := sortTermsLongestFirst([]string{"fed", "reserve", "federal reserve", "ecb"})

	for i := 1; i < len(terms); i++ {
		if len(terms[i-1]) < len(terms[i]) {
			t.Fatalf("terms not sorted longest-first: %q before %q", terms[i-1], terms[i])
		}
	}
	if terms[0] != "federal reserve" {
		t.Errorf("terms[0] = %q, want the multi-word term first", terms[0])
	}

	// The default list must come out of Load in the same order.
	defaults := sortTermsLongestFirst(defaultNoTranslateTerms)
	for i := 1; i < len(defaults); i++ {
		if len(defaults[i-1]) < len(defaults[i]) {
			t.Fatalf("default terms not sorted longest-first: %q before %q", defaults[i-1], defaults[i])
		}
	}
}

func TestLoadSortsProtectedTerms(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "123456789012345678")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 1; i < len(cfg.NoTranslateTerms); i++ {
		if len(cfg.NoTranslateTerms[i-1]) < len(cfg.NoTranslateTerms[i]) {
			t.Fatalf("NoTranslateTerms not sorted longest-first: %q before %q",
				cfg.NoTranslateTerms[i-1], cfg.NoTranslateTerms[i])
		}
	}
}

func TestColorFor(t *testing.T) {
	if ColorFor(classify.Economy) != 0xf1c40f {
		t.Errorf("Economy color = %#x", ColorFor(classify.Economy))
	}
	if ColorFor(classify.Category("Other")) != defaultColor {
		t.Errorf("unmapped category should use default color")
	}
}
