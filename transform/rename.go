package transform

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkElements carry href attributes worth rewriting.
const linkElements = "a, link, area, base"

// resourceAttrs may reference page files outside href.
var resourceAttrs = []string{"src", "data-src", "data-href"}

// RenameExtensions renames every .html file under root to .php and
// updates references across the site to point at the new names.
// Returns the number of renamed files.
func (t *Transformer) RenameExtensions(ctx context.Context, root string) (int, error) {
	// Collect the basenames that will change.
	htmlPaths, err := walkFiles(root, func(name string) bool {
		return hasSuffixAny(name, ".html")
	})
	if err != nil {
		return 0, err
	}
	renamed := make(map[string]bool, len(htmlPaths))
	for _, p := range htmlPaths {
		renamed[filepath.Base(p)] = true
	}
	if len(renamed) == 0 {
		return 0, nil
	}

	// Rewrite references before touching the files themselves.
	pages, err := walkFiles(root, func(name string) bool {
		return hasSuffixAny(name, ".html", ".php")
	})
	if err != nil {
		return 0, err
	}
	t.logger().Info("renaming extensions", "root", root, "files", len(htmlPaths))

	err = t.forEachFile(ctx, pages, func(p string) error {
		return t.rewriteRenamedRefs(p, renamed)
	})
	if err != nil {
		return 0, err
	}

	// Rename pass.
	for _, p := range htmlPaths {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		target := strings.TrimSuffix(p, ".html") + ".php"
		if err := os.Rename(p, target); err != nil {
			return 0, err
		}
	}

	return len(htmlPaths), nil
}

// rewriteRenamedRefs updates references to renamed page files in one
// file. The match is on the filename component of each reference, so
// query strings and fragments survive the rewrite.
func (t *Transformer) rewriteRenamedRefs(p string, renamed map[string]bool) error {
	content, err := readFile(p)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.logger().Warn("parse failed", "path", p, "error", err)
		return nil
	}

	modified := false
	replace := func(sel *goquery.Selection, attr, value string) {
		ref, err := url.Parse(value)
		if err != nil {
			return
		}
		filename := path.Base(ref.Path)
		if !renamed[filename] {
			return
		}
		target := strings.TrimSuffix(filename, ".html") + ".php"
		sel.SetAttr(attr, strings.Replace(value, filename, target, 1))
		modified = true
	}

	doc.Find(linkElements).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			replace(sel, "href", href)
		}
	})
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range resourceAttrs {
			if value, ok := sel.Attr(attr); ok {
				replace(sel, attr, value)
			}
		}
	})

	if !modified {
		return nil
	}
	rendered, err := doc.Html()
	if err != nil {
		return err
	}
	return writeFile(p, stripVoidClosers(rendered))
}
