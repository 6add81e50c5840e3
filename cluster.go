package mirrorkit

import "context"

// IncludesDir is the artifact directory created under the working
// root. The page scanner skips it so reruns never treat artifacts as
// pages.
const IncludesDir = "includes"

// Cluster groups near-duplicate blocks from distinct page files.
// Clusters are read-only once built.
type Cluster struct {
	ID     string
	Type   BlockType
	Blocks []Block // extraction order; Blocks[0] is the seed
}

// Canonical returns the block whose content represents the cluster in
// its include artifact.
func (c *Cluster) Canonical() Block {
	return c.Blocks[0]
}

// Artifact is the shared include file materialized for one cluster.
// Exactly one exists per retained cluster; never mutated.
type Artifact struct {
	ClusterID string
	Filename  string
	Path      string // slash path relative to the working root
	Content   string
}

// Validate returns an error if the artifact contains invalid fields.
func (a *Artifact) Validate() error {
	if a.Filename == "" {
		return Errorf(EINVALID, "artifact filename required")
	}
	if a.Content == "" {
		return Errorf(EINVALID, "artifact content required")
	}
	return nil
}

// ArtifactWriter persists include artifacts under the working root,
// creating the artifact directory on demand.
type ArtifactWriter interface {
	WriteArtifact(ctx context.Context, root string, artifact *Artifact) error
}
