// Package classify asks an LLM whether a headline is market-significant and
// validates the answer into a closed verdict shape.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/parisky90/DiscordBot/internal/logger"
)

// Completer is one chat-completion backend. Implementations must return the
// raw model text; parsing and validation happen here.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

var (
	ErrEmptyHeadline    = errors.New("classify: empty headline")
	ErrMalformedVerdict = errors.New("classify: malformed verdict")
)

const defaultTimeout = 60 * time.Second

type Classifier struct {
	llm     Completer
	timeout time.Duration
}

func New(llm Completer, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Classifier{llm: llm, timeout: timeout}
}

// Classify returns a verdict for the headline, or an error when the model
// call fails or its response does not validate. Errors are never retried
// here; callers treat a failure as "not significant, skip".
func (c *Classifier) Classify(ctx context.Context, title string) (Verdict, error) {
	if strings.TrimSpace(title) == "" {
		return Verdict{}, ErrEmptyHeadline
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.llm.Complete(ctx, systemPrompt, buildPrompt(title))
	if err != nil {
		return Verdict{}, fmt.Errorf("classify: completion failed: %w", err)
	}

	v, err := ParseVerdict(raw)
	if err != nil {
		return Verdict{}, err
	}

	if v.Significant {
		logger.Info("headline significant", "category", v.Category, "reason", v.Reason, "title", truncate(title, 60))
	} else {
		logger.Debug("headline ignored", "category", v.Category, "reason", v.Reason, "title", truncate(title, 60))
	}
	return v, nil
}

// ParseVerdict validates the raw model output. The response must be a single
// JSON object with a boolean "significant" and string "category"; models
// occasionally wrap it in markdown fences, which are tolerated.
func ParseVerdict(raw string) (Verdict, error) {
	body := extractJSONObject(raw)
	if body == "" {
		return Verdict{}, fmt.Errorf("%w: no JSON object in %q", ErrMalformedVerdict, truncate(raw, 120))
	}

	var parsed struct {
		Significant *bool   `json:"significant"`
		Category    *string `json:"category"`
		Reason      string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	if parsed.Significant == nil {
		return Verdict{}, fmt.Errorf("%w: missing or non-boolean \"significant\"", ErrMalformedVerdict)
	}
	if parsed.Category == nil {
		return Verdict{}, fmt.Errorf("%w: missing or non-string \"category\"", ErrMalformedVerdict)
	}

	return Verdict{
		Significant: *parsed.Significant,
		Category:    NormalizeCategory(*parsed.Category),
		Reason:      strings.TrimSpace(parsed.Reason),
	}, nil
}

// extractJSONObject strips markdown fences and any stray prose around the
// first top-level {...} span. Returns "" when no object is present.
func extractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
