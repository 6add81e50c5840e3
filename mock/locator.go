package mock

import (
	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.Locator = (*Locator)(nil)

// Locator is a mock implementation of mirrorkit.Locator.
type Locator struct {
	LocateFingerprintFn func(block *mirrorkit.Block, content string) (mirrorkit.Span, bool)
	LocateScriptFn      func(block *mirrorkit.Block, content string) (mirrorkit.Span, bool)
	LocateLinkSetFn     func(block *mirrorkit.Block, content string) (mirrorkit.Span, bool)
}

func (l *Locator) LocateFingerprint(block *mirrorkit.Block, content string) (mirrorkit.Span, bool) {
	return l.LocateFingerprintFn(block, content)
}

func (l *Locator) LocateScript(block *mirrorkit.Block, content string) (mirrorkit.Span, bool) {
	return l.LocateScriptFn(block, content)
}

func (l *Locator) LocateLinkSet(block *mirrorkit.Block, content string) (mirrorkit.Span, bool) {
	return l.LocateLinkSetFn(block, content)
}
