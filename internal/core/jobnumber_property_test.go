package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/laporte-eng/jobnav/pkg/models"
	"pgregory.net/rapid"
)

// genNoSixDigitRun generates text where every digit run is at most five
// characters long.
func genNoSixDigitRun(t *rapid.T) string {
	n := rapid.IntRange(0, 6).Draw(t, "chunks")
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(rapid.StringMatching(`[0-9]{0,5}`).Draw(t, "digits"))
		b.WriteString(rapid.StringMatching(`[A-Za-z._ -]{1,4}`).Draw(t, "sep"))
	}
	return b.String()
}

func TestProperty_ExtractJobNumberFailsWithoutSixDigitRun(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genNoSixDigitRun(rt)

		_, err := ExtractJobNumber(text)
		if !errors.Is(err, models.ErrJobNumberNotFound) {
			rt.Fatalf("ExtractJobNumber(%q) = %v, want job_number_not_found", text, err)
		}
	})
}

func TestProperty_ExtractJobNumberReturnsFirstSixOfEarliestRun(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prefix := genNoSixDigitRun(rt)
		// Keep the prefix from merging with the run.
		prefix += "x"
		run := rapid.StringMatching(`[0-9]{6,10}`).Draw(rt, "run")
		suffix := rapid.StringMatching(`[A-Za-z0-9._-]{0,12}`).Draw(rt, "suffix")
		text := prefix + run + "-" + suffix

		got, err := ExtractJobNumber(text)
		if err != nil {
			rt.Fatalf("ExtractJobNumber(%q) returned error: %v", text, err)
		}
		if string(got) != run[:6] {
			rt.Fatalf("ExtractJobNumber(%q) = %q, want %q", text, got, run[:6])
		}
		if idx := strings.Index(text, string(got)); idx != len(prefix) {
			rt.Fatalf("match found at offset %d, want %d", idx, len(prefix))
		}
	})
}

func TestProperty_ExtractedJobNumberIsValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")

		got, err := ExtractJobNumber(text)
		if err != nil {
			return
		}
		if !models.IsJobNumber(string(got)) {
			rt.Fatalf("ExtractJobNumber(%q) = %q, not a valid job number", text, got)
		}
		if !strings.Contains(text, string(got)) {
			rt.Fatalf("ExtractJobNumber(%q) = %q, not a substring", text, got)
		}
	})
}
