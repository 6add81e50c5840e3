// Package fs implements file system backed storage for page files and
// include artifacts.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fcolombo/mirrorkit"
)

// PageExtensions are the file extensions treated as page files.
var PageExtensions = []string{".php", ".html", ".htm", ".asp"}

// Ensure service implements interface.
var _ mirrorkit.PageStore = (*PageStore)(nil)

// PageStore loads and saves page files under a directory tree.
type PageStore struct{}

// NewPageStore returns a new instance of PageStore.
func NewPageStore() *PageStore {
	return &PageStore{}
}

// Scan walks root and loads every page file. filepath.WalkDir visits
// entries in lexical order, which fixes the engine's processing order.
// The includes directory is skipped so reruns do not treat previously
// written artifacts as pages.
func (s *PageStore) Scan(ctx context.Context, root string) ([]*mirrorkit.Page, error) {
	var pages []*mirrorkit.Page

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == mirrorkit.IncludesDir && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPageFile(path) {
			return nil
		}

		buf, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		pages = append(pages, &mirrorkit.Page{Path: path, Content: string(buf)})
		return nil
	})
	if err != nil {
		return nil, mirrorkit.Errorf(mirrorkit.EINTERNAL, "scan %q: %v", root, err)
	}

	return pages, nil
}

// Save writes the page's current content back to its path.
func (s *PageStore) Save(ctx context.Context, page *mirrorkit.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(page.Path, []byte(page.Content), 0644); err != nil {
		return mirrorkit.Errorf(mirrorkit.EINTERNAL, "save %q: %v", page.Path, err)
	}
	return nil
}

func isPageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range PageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
