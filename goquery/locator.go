package goquery

import (
	"maps"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fcolombo/mirrorkit"
)

// Ensure Locator implements mirrorkit.Locator at compile time.
var _ mirrorkit.Locator = (*Locator)(nil)

// fingerprintThreshold is the minimum structural similarity for a
// fingerprint match.
const fingerprintThreshold = 0.8

// linkSetThreshold is the minimum fraction of a block's links a
// candidate container must contain.
const linkSetThreshold = 0.7

// minMenuItems guards the link-set tier against matching on too few
// links.
const minMenuItems = 3

// navClassPattern matches class names of navigation containers.
var navClassPattern = regexp.MustCompile(`(?i)(nav|menu)`)

// Locator implements the parse-tree tiers of the rewrite fallback
// chain. Each method re-parses the page's current content, so earlier
// replacements are observed.
type Locator struct {
	scorer mirrorkit.Scorer
}

// NewLocator creates a new Locator using the given similarity scorer.
func NewLocator(scorer mirrorkit.Scorer) *Locator {
	return &Locator{scorer: scorer}
}

// LocateFingerprint matches navigation, header and footer blocks by a
// structural fingerprint built from link targets, class names and ids.
// The single best-scoring element of the same tag wins if its
// fingerprint similarity is at least 0.8.
func (l *Locator) LocateFingerprint(block *mirrorkit.Block, content string) (mirrorkit.Span, bool) {
	root, ok := parseFragmentRoot(block.Content)
	if !ok {
		return mirrorkit.Span{}, false
	}
	want := structureFingerprint(root)
	tag := goquery.NodeName(root)

	fileDoc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return mirrorkit.Span{}, false
	}

	var best *goquery.Selection
	bestScore := 0.0
	fileDoc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		score := l.scorer.Ratio(want, structureFingerprint(s))
		if score > bestScore {
			bestScore = score
			best = s
		}
	})

	if best == nil || bestScore < fingerprintThreshold {
		return mirrorkit.Span{}, false
	}
	return spanOf(content, outerHTML(best))
}

// LocateScript matches script blocks by exact attribute equality.
func (l *Locator) LocateScript(block *mirrorkit.Block, content string) (mirrorkit.Span, bool) {
	blockDoc, err := goquery.NewDocumentFromReader(strings.NewReader(block.Content))
	if err != nil {
		return mirrorkit.Span{}, false
	}
	script := blockDoc.Find("script").First()
	if script.Length() == 0 {
		return mirrorkit.Span{}, false
	}
	want := attrMap(script)

	fileDoc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return mirrorkit.Span{}, false
	}

	var span mirrorkit.Span
	found := false
	fileDoc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !maps.Equal(attrMap(s), want) {
			return true
		}
		if sp, ok := spanOf(content, outerHTML(s)); ok {
			span, found = sp, true
			return false
		}
		return true
	})
	return span, found
}

// LocateLinkSet matches navigation blocks by containment of their
// (link target, visible label) pairs in a candidate nav/menu/ul
// container.
func (l *Locator) LocateLinkSet(block *mirrorkit.Block, content string) (mirrorkit.Span, bool) {
	blockDoc, err := goquery.NewDocumentFromReader(strings.NewReader(block.Content))
	if err != nil {
		return mirrorkit.Span{}, false
	}
	items := linkPairs(blockDoc.Selection)
	if len(items) < minMenuItems {
		return mirrorkit.Span{}, false
	}

	fileDoc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return mirrorkit.Span{}, false
	}

	candidates := fileDoc.Find("nav, div, ul").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return navClassPattern.MatchString(s.AttrOr("class", ""))
	})
	if candidates.Length() == 0 {
		candidates = fileDoc.Find("nav, ul")
	}

	var span mirrorkit.Span
	found := false
	candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		have := linkPairs(s)
		matched := 0
		for _, item := range items {
			if containsPair(have, item) {
				matched++
			}
		}
		if float64(matched)/float64(len(items)) < linkSetThreshold {
			return true
		}
		if sp, ok := spanOf(content, outerHTML(s)); ok {
			span, found = sp, true
			return false
		}
		return true
	})
	return span, found
}

// parseFragmentRoot parses a block fragment and returns its first
// element.
func parseFragmentRoot(fragment string) (*goquery.Selection, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, false
	}
	s := doc.Find("body").Children().First()
	if s.Length() == 0 {
		return nil, false
	}
	return s, true
}

// structureFingerprint joins the link targets, class names and ids
// found under a node, sorted, into a structural identity string.
func structureFingerprint(s *goquery.Selection) string {
	var parts []string
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		parts = append(parts, a.AttrOr("href", ""))
	})
	s.Find("[class]").Each(func(_ int, el *goquery.Selection) {
		parts = append(parts, strings.Fields(el.AttrOr("class", ""))...)
	})
	s.Find("[id]").Each(func(_ int, el *goquery.Selection) {
		parts = append(parts, el.AttrOr("id", ""))
	})
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

type linkPair struct {
	href string
	text string
}

func linkPairs(s *goquery.Selection) []linkPair {
	var out []linkPair
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		out = append(out, linkPair{a.AttrOr("href", ""), strings.TrimSpace(a.Text())})
	})
	return out
}

func containsPair(pairs []linkPair, want linkPair) bool {
	for _, p := range pairs {
		if p == want {
			return true
		}
	}
	return false
}

func attrMap(s *goquery.Selection) map[string]string {
	out := make(map[string]string)
	if len(s.Nodes) == 0 {
		return out
	}
	for _, a := range s.Nodes[0].Attr {
		out[a.Key] = a.Val
	}
	return out
}

// spanOf finds the rendered element verbatim in the raw content.
// Re-rendering can normalize markup; when the rendered form no longer
// appears verbatim the tier fails and the chain moves on.
func spanOf(content, rendered string) (mirrorkit.Span, bool) {
	if rendered == "" {
		return mirrorkit.Span{}, false
	}
	i := strings.Index(content, rendered)
	if i < 0 {
		return mirrorkit.Span{}, false
	}
	return mirrorkit.Span{Start: i, End: i + len(rendered)}, true
}
