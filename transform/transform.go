// Package transform applies post-mirror cleanup passes to a downloaded
// site tree: lazy-load attribute checks, query-string file renames,
// link normalization, extension renames and pretty printing.
package transform

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent per-file rewrites.
const DefaultWorkers = 8

// voidTagPattern strips closing tags that void elements must not have
// after a full-document re-render.
var voidTagPattern = regexp.MustCompile(`(?i)</(area|base|br|col|embed|hr|img|input|link|meta|param|source|track|wbr)>`)

// Transformer applies cleanup passes to a mirrored site tree.
type Transformer struct {
	// Logger receives progress diagnostics. Discarded when nil.
	Logger *slog.Logger

	// Workers bounds per-file concurrency. DefaultWorkers when zero.
	Workers int
}

func (t *Transformer) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (t *Transformer) workers() int {
	if t.Workers > 0 {
		return t.Workers
	}
	return DefaultWorkers
}

// walkFiles returns the files under root whose name passes match, in
// lexical order.
func walkFiles(root string, match func(name string) bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if match(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// forEachFile runs fn for every path with bounded concurrency.
func (t *Transformer) forEachFile(ctx context.Context, paths []string, fn func(path string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(path)
		})
	}
	return g.Wait()
}

func hasSuffixAny(name string, suffixes ...string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

func readFile(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// stripVoidClosers removes closing tags for void elements introduced by
// re-rendering a parsed document.
func stripVoidClosers(content string) string {
	return voidTagPattern.ReplaceAllString(content, "")
}
