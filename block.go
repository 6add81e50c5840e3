package mirrorkit

// BlockType identifies the extraction source of a candidate block.
type BlockType string

// Block types produced by the extractor.
const (
	BlockScript     BlockType = "script"
	BlockNavigation BlockType = "navigation"
	BlockHeader     BlockType = "header"
	BlockFooter     BlockType = "footer"
	BlockCSSLinks   BlockType = "css_links"
	BlockLinkGroup  BlockType = "link_group"
	BlockMetaTags   BlockType = "meta_tags"
	BlockPHPCode    BlockType = "php_code"
)

// Block is a typed span of text extracted from one page file as a
// potential duplication target. Blocks are immutable once created.
type Block struct {
	Type    BlockType
	Content string
	Hash    string // content fingerprint, hex
	Path    string // owning page file
}

// Validate returns an error if the block contains invalid fields.
func (b *Block) Validate() error {
	if b.Type == "" {
		return Errorf(EINVALID, "block type required")
	}
	if b.Content == "" {
		return Errorf(EINVALID, "block content required")
	}
	if b.Hash == "" {
		return Errorf(EINVALID, "block fingerprint required")
	}
	return nil
}

// Extractor extracts candidate blocks from one page file's content.
// Blocks shorter than minSize characters are discarded regardless of
// type. A parse failure is reported alongside whatever blocks the
// parse-independent scans still produced; callers log it and continue.
type Extractor interface {
	ExtractBlocks(content string, minSize int) ([]Block, error)
}

// Span is a half-open byte range [Start, End) in a page file's content.
type Span struct {
	Start int
	End   int
}

// Locator finds the byte span of a block occurrence in a page's
// current content using parsed structure rather than raw text. Each
// method implements one tier of the rewrite fallback chain.
type Locator interface {
	// LocateFingerprint matches navigation, header and footer blocks by
	// a structural fingerprint of link targets, class names and ids.
	LocateFingerprint(block *Block, content string) (Span, bool)

	// LocateScript matches script blocks by exact attribute equality.
	LocateScript(block *Block, content string) (Span, bool)

	// LocateLinkSet matches navigation blocks by containment of their
	// (link target, visible label) pairs in a candidate container.
	LocateLinkSet(block *Block, content string) (Span, bool)
}

// Scorer computes a normalized similarity ratio in [0, 1] between two
// text spans (1.0 = identical). Implementations must be symmetric and
// deterministic, with no side effects.
type Scorer interface {
	Ratio(a, b string) float64
}
