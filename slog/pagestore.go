// Package slog provides logging decorators for mirrorkit services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fcolombo/mirrorkit"
)

// Ensure LoggingPageStore implements mirrorkit.PageStore.
var _ mirrorkit.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with debug logging.
type LoggingPageStore struct {
	next   mirrorkit.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next mirrorkit.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// Scan delegates to the wrapped store and logs the operation.
func (s *LoggingPageStore) Scan(ctx context.Context, root string) (pages []*mirrorkit.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page scan",
			"root", root,
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scan(ctx, root)
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingPageStore) Save(ctx context.Context, page *mirrorkit.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("page save",
			"path", page.Path,
			"size", len(page.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, page)
}
