// Package etree generates XML sitemaps for a mirrored site tree.
package etree

import (
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/fcolombo/mirrorkit"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapFilename is the file written at the tree root.
const SitemapFilename = "sitemap.xml"

// pageExtensions are the files listed in the sitemap.
var pageExtensions = []string{".php", ".html", ".htm", ".asp"}

// Generator builds a sitemap for the page files under a site tree.
type Generator struct {
	domain string
}

// NewGenerator creates a Generator for the given site domain, e.g.
// "https://example.com".
func NewGenerator(domain string) *Generator {
	return &Generator{domain: strings.TrimRight(domain, "/")}
}

// Generate walks root's page files in lexical order and builds the
// sitemap document. Include artifacts are fragments, not pages, so the
// includes directory is skipped.
func (g *Generator) Generate(root string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == mirrorkit.IncludesDir && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPage(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		entry := urlset.CreateElement("url")
		entry.CreateElement("loc").SetText(g.locFor(rel))
		entry.CreateElement("lastmod").SetText(info.ModTime().UTC().Format(time.DateOnly))
		return nil
	})
	if err != nil {
		return nil, mirrorkit.Errorf(mirrorkit.EINTERNAL, "sitemap walk %q: %v", root, err)
	}

	doc.Indent(2)
	return doc, nil
}

// Write generates the sitemap and writes it to sitemap.xml under root.
func (g *Generator) Write(root string) error {
	doc, err := g.Generate(root)
	if err != nil {
		return err
	}
	if err := doc.WriteToFile(filepath.Join(root, SitemapFilename)); err != nil {
		return mirrorkit.Errorf(mirrorkit.EINTERNAL, "write sitemap: %v", err)
	}
	return nil
}

// locFor maps a tree-relative file path to its public URL. Directory
// indexes collapse to the directory itself.
func (g *Generator) locFor(rel string) string {
	p := filepath.ToSlash(rel)
	base := strings.ToLower(filepath.Base(p))
	for _, ext := range pageExtensions {
		if base == "index"+ext {
			p = strings.TrimSuffix(p, filepath.Base(p))
			break
		}
	}
	return g.domain + "/" + (&url.URL{Path: p}).EscapedPath()
}

func isPage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range pageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
