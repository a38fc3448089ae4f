package discord

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestNewValidation(t *testing.T) {
	if _, err := New("", "123"); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := New("token", ""); err == nil {
		t.Error("expected error for empty channel ID")
	}
	c, err := New("token", "123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.channelID != "123" {
		t.Errorf("channelID = %q", c.channelID)
	}
}

func TestClassifyRateLimit(t *testing.T) {
	src := &discordgo.RateLimitError{
		RateLimit: &discordgo.RateLimit{
			TooManyRequests: &discordgo.TooManyRequests{RetryAfter: 2 * time.Second},
		},
	}
	err := classify(src)

	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %T", err)
	}
	if rl.RetryAfter != 2*time.Second {
		t.Errorf("RetryAfter = %s", rl.RetryAfter)
	}
}

func TestClassifyForbidden(t *testing.T) {
	src := &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
	}
	if err := classify(src); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestClassifyPassesThroughOtherErrors(t *testing.T) {
	src := &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusInternalServerError},
	}
	if err := classify(src); errors.Is(err, ErrForbidden) {
		t.Fatal("500 must not map to ErrForbidden")
	}
	plain := errors.New("boom")
	if got := classify(plain); got != plain {
		t.Errorf("plain error rewritten: %v", got)
	}
}
