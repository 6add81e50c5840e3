package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fcolombo/mirrorkit"
)

// Ensure service implements interface.
var _ mirrorkit.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter writes include artifacts under the working root.
type ArtifactWriter struct{}

// NewArtifactWriter returns a new instance of ArtifactWriter.
func NewArtifactWriter() *ArtifactWriter {
	return &ArtifactWriter{}
}

// WriteArtifact writes the artifact's content to its path relative to
// root, creating the includes directory on first use.
func (w *ArtifactWriter) WriteArtifact(ctx context.Context, root string, artifact *mirrorkit.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := artifact.Validate(); err != nil {
		return err
	}

	target := filepath.Join(root, filepath.FromSlash(artifact.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return mirrorkit.Errorf(mirrorkit.EINTERNAL, "create includes dir: %v", err)
	}
	if err := os.WriteFile(target, []byte(artifact.Content), 0644); err != nil {
		return mirrorkit.Errorf(mirrorkit.EINTERNAL, "write artifact %q: %v", artifact.Filename, err)
	}
	return nil
}
