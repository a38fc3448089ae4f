// Package translate translates headline text while keeping a configured
// vocabulary of terms (tickers, acronyms, FX pairs) byte-for-byte intact
// across the round trip.
package translate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/parisky90/DiscordBot/internal/logger"
)

// Provider performs the actual machine translation of one text.
type Provider interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Machine-readable provider error classes.
var (
	ErrQuotaExceeded = errors.New("translate: quota exceeded")
	ErrInvalidAuth   = errors.New("translate: invalid credential")
	ErrEmptyResult   = errors.New("translate: empty result")
)

// Translator wraps a Provider with placeholder protection. Protected terms
// must be supplied longest-first so multi-word terms win over their
// substrings; config guarantees that ordering.
type Translator struct {
	provider   Provider
	terms      []termRule
	targetLang string
}

type termRule struct {
	term string
	re   *regexp.Regexp
}

var nonWord = regexp.MustCompile(`\W`)

func New(provider Provider, protectedTerms []string, targetLang string) *Translator {
	rules := make([]termRule, 0, len(protectedTerms))
	for _, term := range protectedTerms {
		if term == "" {
			continue
		}
		var re *regexp.Regexp
		if nonWord.MatchString(term) {
			// Terms like "EUR/USD" can't sit on word boundaries; match
			// them as literal case-insensitive substrings.
			re = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
		} else {
			re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		}
		rules = append(rules, termRule{term: term, re: re})
	}
	return &Translator{provider: provider, terms: rules, targetLang: targetLang}
}

// placeholder tokens are ASCII upper-case so a case-mangling MT engine maps
// them to themselves.
func placeholderToken(i int) string {
	return fmt.Sprintf("__TERM_%d__", i)
}

// Translate protects configured terms, translates the text, and reinserts
// the original (pre-translation, original-casing) term text. On any provider
// failure the error is returned as-is; placeholder-laden text is never
// returned.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyResult
	}

	masked, placeholders := t.mask(text)

	translated, err := t.provider.Translate(ctx, masked, t.targetLang)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(translated) == "" {
		return "", ErrEmptyResult
	}

	return restore(translated, placeholders), nil
}

// mask replaces protected-term matches with placeholder tokens and returns
// the mapping. Within each term's pass matches are applied in reverse
// position order so earlier replacements don't shift later offsets.
func (t *Translator) mask(text string) (string, map[string]string) {
	placeholders := make(map[string]string)
	current := text
	index := 0

	for _, rule := range t.terms {
		matches := rule.re.FindAllStringIndex(current, -1)
		for i := len(matches) - 1; i >= 0; i-- {
			start, end := matches[i][0], matches[i][1]
			original := current[start:end]
			token := placeholderToken(index)
			placeholders[token] = original
			current = current[:start] + token + current[end:]
			index++
		}
	}

	if len(placeholders) > 0 {
		logger.Debug("protected terms masked", "count", len(placeholders))
	}
	return current, placeholders
}

// restore substitutes placeholders back, longest token first, so __TERM_1__
// never clobbers the prefix of __TERM_12__.
func restore(text string, placeholders map[string]string) string {
	tokens := make([]string, 0, len(placeholders))
	for token := range placeholders {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	for _, token := range tokens {
		text = strings.ReplaceAll(text, token, placeholders[token])
	}
	return text
}
