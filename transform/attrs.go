package transform

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultAttrs are the lazy-load attributes checked for resource URLs
// that the mirroring tool does not follow on its own.
const DefaultAttrs = "data-lazyload,data-bkg,data-src,data-image-src"

// expectedAttrURLs sizes the bloom filter used to deduplicate
// discovered URLs.
const expectedAttrURLs = 100_000

var pageExtPattern = regexp.MustCompile(`(?i)\.html$`)

// IsProbablyURL reports whether a string looks like a URL worth
// fetching: no spaces, and either an absolute URL, a path-like value,
// or a page filename.
func IsProbablyURL(value string) bool {
	if value == "" || strings.Contains(value, " ") {
		return false
	}
	if u, err := url.Parse(value); err == nil && u.Scheme != "" {
		return true
	}
	for _, prefix := range []string{"//", "http://", "https://", "/", "./", "../"} {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	if strings.Contains(value, "/") {
		return true
	}
	return pageExtPattern.MatchString(value)
}

// CheckAttrs scans the page files under root for the given comma
// separated attributes, collects URL-like values resolved against
// domain, and rewrites values carrying the domain itself into
// site-relative form. Returns the discovered URLs in scan order,
// deduplicated.
func (t *Transformer) CheckAttrs(ctx context.Context, domain, root, attrs string) ([]string, error) {
	base, err := url.Parse(domain)
	if err != nil {
		return nil, err
	}
	domainBase := base.Scheme + "://" + base.Host

	var attrList []string
	if attrs != "" {
		attrList = strings.Split(attrs, ",")
	}

	paths, err := walkFiles(root, func(name string) bool {
		return hasSuffixAny(name, ".html", ".php", ".asp")
	})
	if err != nil {
		return nil, err
	}
	t.logger().Info("checking attributes", "attrs", attrList, "root", root, "files", len(paths))

	seen := bloom.NewWithEstimates(expectedAttrURLs, 0.01)
	var extra []string

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := readFile(path)
		if err != nil {
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			t.logger().Warn("parse failed", "path", path, "error", err)
			continue
		}

		modified := false
		doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
			for _, attr := range attrList {
				value, ok := sel.Attr(attr)
				if !ok || !IsProbablyURL(value) {
					continue
				}

				if ref, err := url.Parse(value); err == nil {
					abs := base.ResolveReference(ref).String()
					if !seen.TestAndAddString(abs) {
						extra = append(extra, abs)
					}
				}

				// Same-domain absolute values become site-relative so
				// the mirrored copy stops pointing at the live site.
				if strings.HasPrefix(value, domainBase) {
					if ref, err := url.Parse(value); err == nil {
						relative := ref.Path
						if ref.RawQuery != "" {
							relative += "?" + ref.RawQuery
						}
						if ref.Fragment != "" {
							relative += "#" + ref.Fragment
						}
						sel.SetAttr(attr, relative)
						modified = true
					}
				}
			}
		})

		if modified {
			rendered, err := doc.Html()
			if err != nil {
				return nil, err
			}
			if err := writeFile(path, stripVoidClosers(rendered)); err != nil {
				return nil, err
			}
			t.logger().Debug("attributes rewritten", "path", path)
		}
	}

	return extra, nil
}
