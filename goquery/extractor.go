// Package goquery provides DOM-based block extraction and occurrence
// location for the refactoring engine.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"

	"github.com/fcolombo/mirrorkit"
)

// Ensure Extractor implements mirrorkit.Extractor at compile time.
var _ mirrorkit.Extractor = (*Extractor)(nil)

// layoutClassPattern matches class names used by common layout regions.
var layoutClassPattern = regexp.MustCompile(`(?i)(nav|menu|header|footer)`)

// knownCSSPattern matches a fixed stylesheet/favicon sequence that
// shows up even in markup the parser cannot make sense of.
var knownCSSPattern = regexp.MustCompile(`(?s)<link\s+href="/css/style\.css"[^>]*>\s*<link\s+href="/css/responsive\.css"[^>]*>\s*<link\s+href="/css/fotorama\.dev\.css"[^>]*>\s*<link\s+href="/images/favicon\.ico"[^>]*>`)

// linkRunPattern matches three or more consecutive link elements.
var linkRunPattern = regexp.MustCompile(`(?s)(<link[^>]+>\s*){3,}`)

// phpPattern matches delimiter-scoped code blocks.
var phpPattern = regexp.MustCompile(`(?s)<\?php\s+(.+?)\s+\?>`)

// Extractor extracts typed candidate blocks from page content. It
// combines a best-effort parse tree scan with parse-independent
// pattern scans over the raw text, so malformed markup still yields
// the fixed-pattern and code blocks.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBlocks returns the candidate blocks found in content, in a
// fixed extraction order: structural blocks, head groups, raw-text
// pattern matches, then code blocks. On a parse failure the raw scans
// still run and the error is returned alongside their blocks.
func (e *Extractor) ExtractBlocks(content string, minSize int) ([]mirrorkit.Block, error) {
	var blocks []mirrorkit.Block

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		blocks = append(blocks, structuralBlocks(doc, minSize)...)
		blocks = append(blocks, headGroups(doc, minSize)...)
	}
	blocks = append(blocks, rawScans(content, minSize)...)
	blocks = append(blocks, codeBlocks(content, minSize)...)

	if err != nil {
		return blocks, mirrorkit.Errorf(mirrorkit.EINVALID, "parse page: %v", err)
	}
	return blocks, nil
}

// structuralBlocks scans the parse tree for scripts, layout regions
// matched by class, and the first header and footer elements.
func structuralBlocks(doc *goquery.Document, minSize int) []mirrorkit.Block {
	var blocks []mirrorkit.Block

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		appendBlock(&blocks, mirrorkit.BlockScript, outerHTML(s), minSize)
	})

	doc.Find("nav, div").Each(func(_ int, s *goquery.Selection) {
		if layoutClassPattern.MatchString(s.AttrOr("class", "")) {
			appendBlock(&blocks, mirrorkit.BlockNavigation, outerHTML(s), minSize)
		}
	})

	if s := doc.Find("header").First(); s.Length() > 0 {
		appendBlock(&blocks, mirrorkit.BlockHeader, outerHTML(s), minSize)
	}
	if s := doc.Find("footer").First(); s.Length() > 0 {
		appendBlock(&blocks, mirrorkit.BlockFooter, outerHTML(s), minSize)
	}

	return blocks
}

// headGroups groups runs of adjacent stylesheet-or-icon links and runs
// of adjacent meta elements inside the document head.
func headGroups(doc *goquery.Document, minSize int) []mirrorkit.Block {
	head := doc.Find("head")
	if head.Length() == 0 {
		return nil
	}

	var blocks []mirrorkit.Block
	blocks = append(blocks, groupAdjacent(head.Nodes[0], isStyleLink, mirrorkit.BlockCSSLinks, minSize)...)
	blocks = append(blocks, groupAdjacent(head.Nodes[0], isMeta, mirrorkit.BlockMetaTags, minSize)...)
	return blocks
}

// groupAdjacent collects runs of two or more adjacent sibling elements
// matching the predicate. Whitespace-only text nodes do not break a
// run; any other intervening node does.
func groupAdjacent(parent *html.Node, match func(*html.Node) bool, t mirrorkit.BlockType, minSize int) []mirrorkit.Block {
	var blocks []mirrorkit.Block
	var run []*html.Node

	flush := func() {
		if len(run) >= 2 {
			content := renderNodes(run)
			if len(content) >= minSize {
				blocks = append(blocks, newBlock(t, content))
			}
		}
		run = nil
	}

	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
			// whitespace keeps the run alive
		case n.Type == html.ElementNode && match(n):
			run = append(run, n)
		default:
			flush()
		}
	}
	flush()

	return blocks
}

// isStyleLink reports whether n is a stylesheet or icon link element.
func isStyleLink(n *html.Node) bool {
	if n.Data != "link" {
		return false
	}
	href := attrVal(n, "href")
	return attrVal(n, "rel") == "stylesheet" ||
		attrVal(n, "type") == "image/x-icon" ||
		strings.Contains(href, ".css") ||
		strings.Contains(href, "favicon")
}

func isMeta(n *html.Node) bool {
	return n.Data == "meta"
}

// rawScans matches the fixed CSS sequence and generic link runs over
// the raw text, independent of the parse tree.
func rawScans(content string, minSize int) []mirrorkit.Block {
	var blocks []mirrorkit.Block
	for _, m := range knownCSSPattern.FindAllString(content, -1) {
		if len(m) >= minSize {
			blocks = append(blocks, newBlock(mirrorkit.BlockCSSLinks, m))
		}
	}
	for _, m := range linkRunPattern.FindAllString(content, -1) {
		if len(m) >= minSize {
			blocks = append(blocks, newBlock(mirrorkit.BlockLinkGroup, m))
		}
	}
	return blocks
}

// codeBlocks extracts delimiter-scoped code as opaque blocks. The
// size floor applies to the code between the delimiters.
func codeBlocks(content string, minSize int) []mirrorkit.Block {
	var blocks []mirrorkit.Block
	for _, m := range phpPattern.FindAllStringSubmatch(content, -1) {
		if len(m[1]) >= minSize {
			blocks = append(blocks, newBlock(mirrorkit.BlockPHPCode, "<?php "+m[1]+" ?>"))
		}
	}
	return blocks
}

func appendBlock(blocks *[]mirrorkit.Block, t mirrorkit.BlockType, content string, minSize int) {
	if len(content) < minSize {
		return
	}
	*blocks = append(*blocks, newBlock(t, content))
}

func newBlock(t mirrorkit.BlockType, content string) mirrorkit.Block {
	return mirrorkit.Block{Type: t, Content: content, Hash: hashContent(content)}
}

// hashContent computes the content fingerprint using xxhash.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// outerHTML renders a selection's first node including the node itself.
func outerHTML(s *goquery.Selection) string {
	out, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return out
}

// renderNodes renders nodes back to markup, concatenated.
func renderNodes(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return ""
		}
	}
	return b.String()
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
