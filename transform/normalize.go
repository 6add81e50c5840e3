package transform

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// normalizedAttrs are the attributes rewritten by NormalizeLinks.
var normalizedAttrs = []string{"href", "src", "data-lazyload", "data-src", "data-image-src"}

var (
	multiExtPattern = regexp.MustCompile(`(?i)\.(asp|php)\.html$`)
	refExtPattern   = regexp.MustCompile(`(?i)\.(asp|php)\.html($|[?#])`)
	slashPattern    = regexp.MustCompile(`/{2,}`)
)

// skipPrefixes are values NormalizeLinks leaves as they are: rooted
// paths, absolute URLs, anchors, special URI schemes and template
// placeholders.
var skipPrefixes = []string{"/", "http://", "https://", "//", "#", "javascript:", "data:", "mailto:", "tel:", "{"}

// NormalizeLinks rewrites the page files under root so every internal
// reference is a site-relative rooted path: double extensions left by
// the mirroring tool (.asp.html, .php.html) collapse to .html, files
// carrying them are renamed, relative paths are resolved against each
// file's directory, and same-domain absolute URLs lose the domain.
func (t *Transformer) NormalizeLinks(ctx context.Context, domain, root string) error {
	base, err := url.Parse(domain)
	if err != nil {
		return err
	}
	domainBase := base.Scheme + "://" + base.Host

	// Rename pass.
	doubled, err := walkFiles(root, func(name string) bool {
		return multiExtPattern.MatchString(name)
	})
	if err != nil {
		return err
	}
	for _, path := range doubled {
		if err := ctx.Err(); err != nil {
			return err
		}
		clean := multiExtPattern.ReplaceAllString(filepath.Base(path), ".html")
		if err := os.Rename(path, filepath.Join(filepath.Dir(path), clean)); err != nil {
			return err
		}
		t.logger().Debug("double extension renamed", "path", path, "to", clean)
	}

	// Rewrite pass.
	pages, err := walkFiles(root, func(name string) bool {
		return hasSuffixAny(name, ".html", ".htm", ".asp", ".php")
	})
	if err != nil {
		return err
	}
	t.logger().Info("normalizing links", "root", root, "files", len(pages))

	return t.forEachFile(ctx, pages, func(path string) error {
		relativeDir, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if relativeDir == "." {
			relativeDir = ""
		}
		relativeDir = filepath.ToSlash(relativeDir)

		content, err := readFile(path)
		if err != nil {
			return err
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			t.logger().Warn("parse failed", "path", path, "error", err)
			return nil
		}

		modified := false
		doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
			for _, attr := range normalizedAttrs {
				value, ok := sel.Attr(attr)
				if !ok {
					continue
				}
				if normalized := normalizeValue(value, relativeDir, domainBase); normalized != value {
					sel.SetAttr(attr, normalized)
					modified = true
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
		return writeFile(path, stripVoidClosers(rendered))
	})
}

// normalizeValue rewrites one attribute value to a rooted path. Values
// that are already rooted, absolute, anchors or special URIs keep
// their form but still get extension and slash cleanup.
func normalizeValue(value, relativeDir, domainBase string) string {
	newValue := value

	switch {
	case !hasPrefixAny(value, skipPrefixes...) && strings.TrimSpace(value) != "":
		switch {
		case strings.HasPrefix(value, "../"):
			parts := strings.Split(relativeDir, "/")
			if relativeDir == "" {
				parts = nil
			}
			upCount := strings.Count(value, "../")
			if len(parts) >= upCount {
				rest := value[3*upCount:]
				if prefix := strings.Join(parts[:len(parts)-upCount], "/"); prefix != "" {
					newValue = "/" + prefix + "/" + rest
				} else {
					newValue = "/" + rest
				}
			}
		case strings.HasPrefix(value, "./"):
			if relativeDir != "" {
				newValue = "/" + relativeDir + "/" + value[2:]
			} else {
				newValue = "/" + value[2:]
			}
		default:
			if relativeDir != "" {
				newValue = "/" + relativeDir + "/" + value
			} else {
				newValue = "/" + value
			}
		}
	case strings.HasPrefix(value, domainBase):
		newValue = strings.TrimPrefix(value, domainBase)
		if !strings.HasPrefix(newValue, "/") {
			newValue = "/" + newValue
		}
	}

	newValue = refExtPattern.ReplaceAllString(newValue, ".html${2}")

	// Collapse duplicate slashes without corrupting scheme separators
	// or protocol-relative URLs.
	if i := strings.Index(newValue, "://"); i >= 0 {
		newValue = newValue[:i+3] + slashPattern.ReplaceAllString(newValue[i+3:], "/")
	} else if strings.HasPrefix(newValue, "//") {
		newValue = "//" + slashPattern.ReplaceAllString(newValue[2:], "/")
	} else {
		newValue = slashPattern.ReplaceAllString(newValue, "/")
	}

	return newValue
}

func hasPrefixAny(value string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}
