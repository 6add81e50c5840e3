package mock

import (
	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mirrorkit.Extractor.
type Extractor struct {
	ExtractBlocksFn func(content string, minSize int) ([]mirrorkit.Block, error)
}

func (e *Extractor) ExtractBlocks(content string, minSize int) ([]mirrorkit.Block, error) {
	return e.ExtractBlocksFn(content, minSize)
}
