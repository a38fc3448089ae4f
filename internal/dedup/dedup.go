// Package dedup filters headlines that were already seen recently, either by
// exact source+URL identity or by fuzzy similarity of the normalized title.
package dedup

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Defaults match the windows the bot has always run with.
const (
	DefaultExactWindow = 1000
	DefaultFuzzyWindow = 200
	DefaultFuzzyCutoff = 88
)

type Outcome int

const (
	New Outcome = iota
	// DuplicateCycleRepeat: the same source+URL appeared twice within one
	// processing cycle (scrapers sometimes list an item in two sections).
	DuplicateCycleRepeat
	// DuplicateExactID: source+URL already in the recent-history window.
	DuplicateExactID
	// DuplicateFuzzyTitle: normalized title matched a recently seen title at
	// or above the similarity cutoff.
	DuplicateFuzzyTitle
)

func (o Outcome) String() string {
	switch o {
	case New:
		return "new"
	case DuplicateCycleRepeat:
		return "duplicate-cycle-repeat"
	case DuplicateExactID:
		return "duplicate-exact-id"
	case DuplicateFuzzyTitle:
		return "duplicate-fuzzy-title"
	default:
		return "unknown"
	}
}

// Result carries the outcome; MatchedTitle and Score are set only for
// DuplicateFuzzyTitle.
type Result struct {
	Outcome      Outcome
	MatchedTitle string
	Score        int
}

// Engine holds both recent-history windows plus the per-cycle transient ID
// set. It is not safe for concurrent use; cycles are strictly sequential.
type Engine struct {
	cutoff int
	exact  *window
	fuzzy  *window
	cycle  map[string]struct{}
}

// NewEngine builds an engine with the given window capacities and fuzzy
// similarity cutoff (0-100). Values <= 0 fall back to the defaults.
func NewEngine(exactCap, fuzzyCap, cutoff int) *Engine {
	if exactCap <= 0 {
		exactCap = DefaultExactWindow
	}
	if fuzzyCap <= 0 {
		fuzzyCap = DefaultFuzzyWindow
	}
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}
	return &Engine{
		cutoff: cutoff,
		exact:  newWindow(exactCap),
		fuzzy:  newWindow(fuzzyCap),
		cycle:  make(map[string]struct{}),
	}
}

// StartCycle clears the transient ID set. Call once before each processing
// cycle.
func (e *Engine) StartCycle() {
	e.cycle = make(map[string]struct{})
}

// CheckAndRecord classifies a headline and updates the windows.
//
// The fuzzy window is consulted before the exact-ID window on purpose: news
// sites often keep a URL and tweak the headline text, and the most recent
// wording should win. On a fuzzy hit the exact ID is still recorded so a
// later exact repost is caught cheaply, but the title is not re-added. On an
// exact hit the title is backfilled into the fuzzy window if missing, which
// repairs the case where the fuzzy window evicted it first.
func (e *Engine) CheckAndRecord(source, url, title string) Result {
	id := source + ":" + url

	if _, dup := e.cycle[id]; dup {
		return Result{Outcome: DuplicateCycleRepeat}
	}
	e.cycle[id] = struct{}{}

	norm := Normalize(title)

	if norm != "" {
		var matched string
		var score int
		e.fuzzy.each(func(seen string) bool {
			if s := fuzzy.TokenSetRatio(norm, seen); s >= e.cutoff {
				matched, score = seen, s
				return false
			}
			return true
		})
		if matched != "" {
			if !e.exact.contains(id) {
				e.exact.add(id)
			}
			return Result{Outcome: DuplicateFuzzyTitle, MatchedTitle: matched, Score: score}
		}
	}

	if e.exact.contains(id) {
		if norm != "" && !e.fuzzy.contains(norm) {
			e.fuzzy.add(norm)
		}
		return Result{Outcome: DuplicateExactID}
	}

	e.exact.add(id)
	if norm != "" {
		e.fuzzy.add(norm)
	}
	return Result{Outcome: New}
}

// Reset clears all state, including the recent-history windows. Intended for
// tests.
func (e *Engine) Reset() {
	e.exact.reset()
	e.fuzzy.reset()
	e.cycle = make(map[string]struct{})
}
