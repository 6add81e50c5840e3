package refactor

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/fcolombo/mirrorkit"
)

// Materialize writes one include artifact per retained cluster and
// returns the artifacts keyed by cluster ID. The canonical content is
// the cluster's first-seen member, written verbatim; the filename is
// derived from the block type and a short fingerprint prefix of the
// canonical content.
//
// Distinct clusters can collide on the fingerprint prefix. Colliding
// names get a numeric suffix in cluster order, which keeps them stable
// across runs because cluster order is itself deterministic.
func Materialize(ctx context.Context, root string, clusters []*mirrorkit.Cluster, writer mirrorkit.ArtifactWriter) (map[string]*mirrorkit.Artifact, error) {
	artifacts := make(map[string]*mirrorkit.Artifact, len(clusters))
	used := make(map[string]bool, len(clusters))

	for _, c := range clusters {
		canonical := c.Canonical()
		name := fmt.Sprintf("%s_%s.php", c.Type, fingerprintPrefix(canonical.Content))
		if used[name] {
			base := strings.TrimSuffix(name, ".php")
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s_%d.php", base, n)
				if !used[name] {
					break
				}
			}
		}
		used[name] = true

		artifact := &mirrorkit.Artifact{
			ClusterID: c.ID,
			Filename:  name,
			Path:      path.Join(mirrorkit.IncludesDir, name),
			Content:   canonical.Content,
		}
		if err := writer.WriteArtifact(ctx, root, artifact); err != nil {
			return nil, err
		}
		artifacts[c.ID] = artifact
	}

	return artifacts, nil
}

// IncludeStatement returns the reference statement inserted in place
// of a replaced occurrence, pointing at the artifact's path relative
// to the working root.
func IncludeStatement(artifact *mirrorkit.Artifact) string {
	return fmt.Sprintf("<?php include '%s'; ?>\n", artifact.Path)
}
