package sentiment

import "testing"

func TestLabelForThresholds(t *testing.T) {
	a := New(0.1, -0.1)
	cases := []struct {
		score float64
		want  string
	}{
		{0.5, LabelPositive},
		{0.1, LabelPositive}, // inclusive boundary
		{0.09, LabelNeutral},
		{0.0, LabelNeutral},
		{-0.09, LabelNeutral},
		{-0.1, LabelNegative}, // inclusive boundary
		{-0.5, LabelNegative},
	}
	for _, c := range cases {
		if got := a.labelFor(c.score); got != c.want {
			t.Errorf("labelFor(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestLabelOnText(t *testing.T) {
	a := New(0.1, -0.1)

	if label, score := a.Label("This is great wonderful fantastic news"); label != LabelPositive {
		t.Errorf("positive text labeled %q (score %v)", label, score)
	}
	if label, score := a.Label("A terrible horrible disaster and crisis"); label != LabelNegative {
		t.Errorf("negative text labeled %q (score %v)", label, score)
	}
	if label, score := a.Label("The meeting is scheduled for Tuesday"); label != LabelNeutral {
		t.Errorf("neutral text labeled %q (score %v)", label, score)
	}
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	a := New(0, 0)
	if a.positive != DefaultPositiveThreshold || a.negative != DefaultNegativeThreshold {
		t.Errorf("defaults not applied: %+v", a)
	}
}
