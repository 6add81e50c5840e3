package mock

import (
	"context"

	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of mirrorkit.PageStore.
type PageStore struct {
	ScanFn func(ctx context.Context, root string) ([]*mirrorkit.Page, error)
	SaveFn func(ctx context.Context, page *mirrorkit.Page) error
}

func (s *PageStore) Scan(ctx context.Context, root string) ([]*mirrorkit.Page, error) {
	return s.ScanFn(ctx, root)
}

func (s *PageStore) Save(ctx context.Context, page *mirrorkit.Page) error {
	return s.SaveFn(ctx, page)
}
