package mock

import (
	"context"

	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.RunRecorder = (*RunRecorder)(nil)

// RunRecorder is a mock implementation of mirrorkit.RunRecorder.
type RunRecorder struct {
	RecordRunFn   func(ctx context.Context, run *mirrorkit.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*mirrorkit.Run, error)
	FindRunsFn    func(ctx context.Context, filter mirrorkit.RunFilter) ([]*mirrorkit.Run, error)
}

func (r *RunRecorder) RecordRun(ctx context.Context, run *mirrorkit.Run) error {
	return r.RecordRunFn(ctx, run)
}

func (r *RunRecorder) FindRunByID(ctx context.Context, id string) (*mirrorkit.Run, error) {
	return r.FindRunByIDFn(ctx, id)
}

func (r *RunRecorder) FindRuns(ctx context.Context, filter mirrorkit.RunFilter) ([]*mirrorkit.Run, error) {
	return r.FindRunsFn(ctx, filter)
}
