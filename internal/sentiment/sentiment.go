// Package sentiment labels headlines with a VADER compound score.
package sentiment

import (
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
	LabelNeutral  = "Neutral"

	DefaultPositiveThreshold = 0.1
	DefaultNegativeThreshold = -0.1
)

type Analyzer struct {
	positive float64
	negative float64
}

// New builds an analyzer with the given compound-score thresholds. Zero
// values fall back to the defaults.
func New(positive, negative float64) *Analyzer {
	if positive == 0 {
		positive = DefaultPositiveThreshold
	}
	if negative == 0 {
		negative = DefaultNegativeThreshold
	}
	return &Analyzer{positive: positive, negative: negative}
}

// Label scores the text and returns the label plus the raw compound score.
func (a *Analyzer) Label(text string) (string, float64) {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed).Compound
	return a.labelFor(score), score
}

func (a *Analyzer) labelFor(score float64) string {
	switch {
	case score >= a.positive:
		return LabelPositive
	case score <= a.negative:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
