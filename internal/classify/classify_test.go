package classify

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestClassifyValidVerdict(t *testing.T) {
	llm := &fakeCompleter{response: `{"significant": true, "category": "Economy", "reason": "FOMC rate decision/outlook"}`}
	c := New(llm, time.Second)

	v, err := c.Classify(context.Background(), "Fed holds rates steady, signals potential cuts later this year.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Significant || v.Category != Economy || v.Reason != "FOMC rate decision/outlook" {
		t.Errorf("got %+v", v)
	}
}

func TestClassifyCompleterError(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("connection refused")}
	c := New(llm, time.Second)

	if _, err := c.Classify(context.Background(), "some headline"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClassifyEmptyHeadline(t *testing.T) {
	c := New(&fakeCompleter{}, time.Second)
	if _, err := c.Classify(context.Background(), "   "); !errors.Is(err, ErrEmptyHeadline) {
		t.Fatalf("got %v, want ErrEmptyHeadline", err)
	}
}

func TestParseVerdictCategoryNormalization(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
	}{
		{"stock", Stocks},
		{"Stocks", Stocks},
		{"STOCKS", Stocks},
		{" economy ", Economy},
		{"fx", Forex},
		{"Cryptocurrencies", Crypto},
		{"geopolitical", Geopolitics},
		{"commodity", Commodities},
		{"unknown", Unknown},
		{"weather report", General}, // outside the enum collapses to General
		{"", General},
	}
	for _, c := range cases {
		if got := NormalizeCategory(c.raw); got != c.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestParseVerdictMissingCategory(t *testing.T) {
	_, err := ParseVerdict(`{"significant": true, "reason": "x"}`)
	if !errors.Is(err, ErrMalformedVerdict) {
		t.Fatalf("got %v, want ErrMalformedVerdict", err)
	}
}

func TestParseVerdictNonBooleanSignificant(t *testing.T) {
	_, err := ParseVerdict(`{"significant": "yes", "category": "Stocks", "reason": "x"}`)
	if !errors.Is(err, ErrMalformedVerdict) {
		t.Fatalf("got %v, want ErrMalformedVerdict", err)
	}
}

func TestParseVerdictMalformedJSON(t *testing.T) {
	for _, raw := range []string{"", "not json at all", `{"significant": true`} {
		if _, err := ParseVerdict(raw); !errors.Is(err, ErrMalformedVerdict) {
			t.Errorf("ParseVerdict(%q): got %v, want ErrMalformedVerdict", raw, err)
		}
	}
}

func TestParseVerdictStripsFences(t *testing.T) {
	raw := "```json\n{\"significant\": false, \"category\": \"stock\", \"reason\": \"Routine market summary\"}\n```"
	v, err := ParseVerdict(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Significant || v.Category != Stocks {
		t.Errorf("got %+v", v)
	}
}

func TestParseVerdictTrimsReason(t *testing.T) {
	v, err := ParseVerdict(`{"significant": true, "category": "Forex", "reason": "  intervention  "}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Reason != "intervention" {
		t.Errorf("reason = %q", v.Reason)
	}
}
