package mock

import (
	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of mirrorkit.Scorer.
type Scorer struct {
	RatioFn func(a, b string) float64
}

func (s *Scorer) Ratio(a, b string) float64 {
	return s.RatioFn(a, b)
}
