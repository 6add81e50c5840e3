// Package difflib provides the similarity scorer used by clustering
// and fuzzy matching, backed by the go-difflib SequenceMatcher.
package difflib

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/fcolombo/mirrorkit"
)

// Ensure Scorer implements mirrorkit.Scorer at compile time.
var _ mirrorkit.Scorer = (*Scorer)(nil)

// Scorer computes a rune-level SequenceMatcher ratio between two text
// spans: 2*M/T where M is the number of matched runes and T the total.
// The matcher itself is not perfectly symmetric, so inputs are put in
// a canonical order before matching; Ratio(a, b) == Ratio(b, a) holds.
type Scorer struct{}

// NewScorer creates a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Ratio returns the similarity of a and b in [0, 1], 1.0 = identical.
func (s *Scorer) Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	if a > b {
		a, b = b, a
	}
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

// splitRunes splits s into single-rune strings so the matcher aligns
// at character granularity.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
