package token

import (
	"strings"
	"testing"
)

func TestEstimatorEmpty(t *testing.T) {
	c := NewEstimator()
	if got := c.Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}
	if got := c.Count("   \n\t"); got != 0 {
		t.Errorf("Count(whitespace) = %d, want 0", got)
	}
}

func TestEstimatorEnglish(t *testing.T) {
	c := NewEstimator()

	short := c.Count("Hello world.")
	if short < 2 || short > 6 {
		t.Errorf("Count(short sentence) = %d, want a small positive count", short)
	}

	long := c.Count(strings.Repeat("the quick brown fox jumps over the lazy dog ", 100))
	if long <= short {
		t.Errorf("long text count %d not greater than short count %d", long, short)
	}
}

func TestEstimatorCJK(t *testing.T) {
	c := NewEstimator()

	got := c.Count("今天的会议讨论了预算")
	// CJK counts roughly one token per character.
	if got < 8 || got > 12 {
		t.Errorf("Count(CJK) = %d, want ~10", got)
	}
}

func TestEstimatorMonotonic(t *testing.T) {
	c := NewEstimator()
	prev := 0
	text := ""
	for i := 0; i < 10; i++ {
		text += "another segment of meeting discussion. "
		got := c.Count(text)
		if got < prev {
			t.Fatalf("count decreased from %d to %d as text grew", prev, got)
		}
		prev = got
	}
}

func TestNewPretrainedMissingFile(t *testing.T) {
	if _, err := NewPretrained("testdata/does-not-exist.json"); err == nil {
		t.Error("NewPretrained() should fail for a missing tokenizer file")
	}
}
