package refactor

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fcolombo/mirrorkit"
)

const (
	// fuzzyProbeWindow bounds the end-offset search when mapping a
	// whitespace-normalized match back to original coordinates.
	fuzzyProbeWindow = 64

	// navFileSizeCeiling is the largest file replaced wholesale by the
	// dedicated-navigation-file tier.
	navFileSizeCeiling = 5000

	// navFileRatio caps how much larger than the block a file may be
	// for the fuzzy tier's whole-file shortcut.
	navFileRatio = 1.5
)

var (
	linkTagPattern = regexp.MustCompile(`<link[^>]+>`)
	metaTagPattern = regexp.MustCompile(`<meta[^>]+>`)
)

// tier is one step of the rewrite fallback chain. A tier that does not
// apply to the block's type reports no match and the chain moves on.
type tier struct {
	name   string
	locate func(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool)
}

// Tier names recorded on replacement records.
const (
	TierExact       = "exact"
	TierLinkPattern = "link_pattern"
	TierFingerprint = "fingerprint"
	TierAttrs       = "attrs"
	TierFuzzy       = "fuzzy"
	TierLinkSet     = "link_set"
	TierNavFile     = "nav_file"
)

func (e *Engine) tiers() []tier {
	return []tier{
		{TierExact, locateExact},
		{TierLinkPattern, locateLinkPattern},
		{TierFingerprint, e.locateFingerprint},
		{TierAttrs, e.locateAttrs},
		{TierFuzzy, locateFuzzy},
		{TierLinkSet, e.locateLinkSet},
		{TierNavFile, locateNavFile},
	}
}

// rewrite replaces each cluster member's occurrence in its owning page
// with the cluster's include statement, trying tiers in order. Each
// successful replacement is written through to the store immediately so
// later matches run against saved state. A store failure aborts the
// run; an occurrence no tier can place is recorded as unresolved.
func (e *Engine) rewrite(ctx context.Context, clusters []*mirrorkit.Cluster, artifacts map[string]*mirrorkit.Artifact, pages map[string]*mirrorkit.Page) ([]mirrorkit.Replacement, error) {
	tiers := e.tiers()
	var records []mirrorkit.Replacement

	for _, c := range clusters {
		artifact := artifacts[c.ID]
		include := IncludeStatement(artifact)

		for i := range c.Blocks {
			block := &c.Blocks[i]
			page, ok := pages[block.Path]
			if !ok {
				continue
			}

			rec := mirrorkit.Replacement{ClusterID: c.ID, Path: block.Path}
			for _, t := range tiers {
				span, ok := t.locate(block, page)
				if !ok {
					continue
				}
				page.Content = page.Content[:span.Start] + include + page.Content[span.End:]
				if err := e.Store.Save(ctx, page); err != nil {
					return nil, err
				}
				rec.Tier = t.name
				rec.Resolved = true
				e.logger().Debug("occurrence replaced", "cluster", c.ID, "path", block.Path, "tier", t.name)
				break
			}
			if !rec.Resolved {
				e.logger().Warn("occurrence unresolved", "cluster", c.ID, "path", block.Path, "type", block.Type)
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// locateExact finds the first verbatim occurrence of the block.
func locateExact(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	pos := strings.Index(page.Content, block.Content)
	if pos < 0 {
		return mirrorkit.Span{}, false
	}
	return mirrorkit.Span{Start: pos, End: pos + len(block.Content)}, true
}

// locateLinkPattern matches link groups as a whitespace-tolerant
// sequence of their individual link elements.
func locateLinkPattern(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	if block.Type != mirrorkit.BlockCSSLinks && block.Type != mirrorkit.BlockLinkGroup {
		return mirrorkit.Span{}, false
	}
	return locateTagSequence(block.Content, page.Content, linkTagPattern)
}

func (e *Engine) locateFingerprint(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	switch block.Type {
	case mirrorkit.BlockNavigation, mirrorkit.BlockHeader, mirrorkit.BlockFooter:
		return e.Locator.LocateFingerprint(block, page.Content)
	default:
		return mirrorkit.Span{}, false
	}
}

// locateAttrs matches scripts by attribute equality and meta groups as
// a whitespace-tolerant tag sequence.
func (e *Engine) locateAttrs(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	switch block.Type {
	case mirrorkit.BlockScript:
		return e.Locator.LocateScript(block, page.Content)
	case mirrorkit.BlockMetaTags:
		return locateTagSequence(block.Content, page.Content, metaTagPattern)
	default:
		return mirrorkit.Span{}, false
	}
}

// locateFuzzy matches the block in whitespace-normalized space and maps
// the match back to original byte coordinates. Dedicated navigation
// files that consist of little more than a matched block are replaced
// whole; a file with no normalized match falls through to later tiers.
func locateFuzzy(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	normPage, offsets := normalizeWithMap(page.Content)
	normBlock, _ := normalizeWithMap(block.Content)
	if normBlock == "" {
		return mirrorkit.Span{}, false
	}

	pos := strings.Index(normPage, normBlock)
	if pos < 0 {
		return mirrorkit.Span{}, false
	}

	if isNavFile(block, page) && len(page.Content) <= int(navFileRatio*float64(len(block.Content))) {
		return mirrorkit.Span{Start: 0, End: len(page.Content)}, true
	}

	start := offsets[pos]
	endGuess := offsets[pos+len(normBlock)-1] + 1

	// The normalized match can end mid-whitespace-run in the original,
	// so probe forward until the candidate re-normalizes to the block.
	for end := endGuess; end <= len(page.Content) && end <= endGuess+fuzzyProbeWindow; end++ {
		candidate, _ := normalizeWithMap(page.Content[start:end])
		if candidate == normBlock {
			return mirrorkit.Span{Start: start, End: end}, true
		}
	}
	return mirrorkit.Span{}, false
}

func (e *Engine) locateLinkSet(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	if block.Type != mirrorkit.BlockNavigation {
		return mirrorkit.Span{}, false
	}
	return e.Locator.LocateLinkSet(block, page.Content)
}

// locateNavFile replaces small dedicated navigation files wholesale.
func locateNavFile(block *mirrorkit.Block, page *mirrorkit.Page) (mirrorkit.Span, bool) {
	if !isNavFile(block, page) || len(page.Content) >= navFileSizeCeiling {
		return mirrorkit.Span{}, false
	}
	return mirrorkit.Span{Start: 0, End: len(page.Content)}, true
}

func isNavFile(block *mirrorkit.Block, page *mirrorkit.Page) bool {
	return block.Type == mirrorkit.BlockNavigation &&
		strings.Contains(filepath.Base(page.Path), "navigation")
}

// locateTagSequence finds the block's tags of a given shape as a
// contiguous sequence in the page, tolerating whitespace drift between
// them.
func locateTagSequence(blockContent, pageContent string, tagPattern *regexp.Regexp) (mirrorkit.Span, bool) {
	tags := tagPattern.FindAllString(blockContent, -1)
	if len(tags) == 0 {
		return mirrorkit.Span{}, false
	}

	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = regexp.QuoteMeta(t)
	}
	seq, err := regexp.Compile(`(?s)` + strings.Join(quoted, `\s*`))
	if err != nil {
		return mirrorkit.Span{}, false
	}

	loc := seq.FindStringIndex(pageContent)
	if loc == nil {
		return mirrorkit.Span{}, false
	}
	return mirrorkit.Span{Start: loc[0], End: loc[1]}, true
}

// normalizeWithMap collapses whitespace runs to single spaces and trims
// the result. The returned offsets map each normalized byte back to its
// position in the input.
func normalizeWithMap(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s))

	inSpace := false
	spaceAt := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' {
			if !inSpace {
				inSpace = true
				spaceAt = i
			}
			continue
		}
		if inSpace {
			if b.Len() > 0 {
				b.WriteByte(' ')
				offsets = append(offsets, spaceAt)
			}
			inSpace = false
		}
		b.WriteByte(c)
		offsets = append(offsets, i)
	}

	return b.String(), offsets
}
