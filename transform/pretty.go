package transform

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

const indentUnit = " "

// voidElements never take a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// PrettyPrint re-indents the page files under root, one element per
// line. Returns the number of processed files.
func (t *Transformer) PrettyPrint(ctx context.Context, root string) (int, error) {
	pages, err := walkFiles(root, func(name string) bool {
		return hasSuffixAny(name, ".html", ".htm", ".php", ".asp")
	})
	if err != nil {
		return 0, err
	}
	t.logger().Info("pretty printing", "root", root, "files", len(pages))

	err = t.forEachFile(ctx, pages, func(path string) error {
		content, err := readFile(path)
		if err != nil {
			return err
		}
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			t.logger().Warn("parse failed", "path", path, "error", err)
			return nil
		}

		var b strings.Builder
		renderIndented(&b, doc, 0)
		return writeFile(path, b.String())
	})
	if err != nil {
		return 0, err
	}

	return len(pages), nil
}

func renderIndented(b *strings.Builder, n *html.Node, depth int) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderIndented(b, c, depth)
		}
	case html.DoctypeNode:
		writeIndented(b, depth, "<!DOCTYPE "+n.Data+">")
	case html.CommentNode:
		// The parser turns processing instructions, PHP tags included,
		// into comments starting with "?". Restore their original form.
		if strings.HasPrefix(n.Data, "?") {
			writeIndented(b, depth, "<"+n.Data+">")
		} else {
			writeIndented(b, depth, "<!--"+n.Data+"-->")
		}
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			writeIndented(b, depth, text)
		}
	case html.ElementNode:
		var tag strings.Builder
		tag.WriteString("<" + n.Data)
		for _, attr := range n.Attr {
			tag.WriteString(" " + attr.Key + `="` + html.EscapeString(attr.Val) + `"`)
		}
		tag.WriteString(">")
		writeIndented(b, depth, tag.String())

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderIndented(b, c, depth+1)
		}
		if !voidElements[n.Data] {
			writeIndented(b, depth, "</"+n.Data+">")
		}
	}
}

func writeIndented(b *strings.Builder, depth int, line string) {
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(line)
	b.WriteString("\n")
}
