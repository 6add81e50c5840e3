package mirrorkit

import "context"

// Page is one page file, owned exclusively by the engine for a run's
// duration. Content is the live text: the rewrite phase mutates it and
// later matches observe the mutated state.
type Page struct {
	Path    string
	Content string
}

// PageStore loads page files from a directory tree and writes mutated
// content back through to durable storage.
type PageStore interface {
	// Scan walks root in a fixed lexical order and loads every page
	// file. Ordering is part of the engine's determinism contract.
	Scan(ctx context.Context, root string) ([]*Page, error)

	// Save writes the page's current content to disk.
	Save(ctx context.Context, page *Page) error
}
