package mock

import (
	"context"

	"github.com/fcolombo/mirrorkit"
)

var _ mirrorkit.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of mirrorkit.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(ctx context.Context, root string, artifact *mirrorkit.Artifact) error
}

func (w *ArtifactWriter) WriteArtifact(ctx context.Context, root string, artifact *mirrorkit.Artifact) error {
	return w.WriteArtifactFn(ctx, root, artifact)
}
