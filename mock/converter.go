package mock

import (
	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.Converter = (*Converter)(nil)

// Converter is a mock implementation of mirrorkit.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
