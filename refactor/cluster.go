package refactor

import (
	"fmt"

	"github.com/fcolombo/mirrorkit"
)

// BuildClusters groups candidate blocks into clusters of near
// duplicates using greedy single-link grouping.
//
// Blocks are processed in extraction order. Each unclaimed occurrence
// seeds a cluster; every subsequent unclaimed occurrence from a file
// not yet in the forming cluster joins when its similarity against the
// seed meets the threshold. Claims are per occurrence, not per content
// fingerprint, so byte-identical blocks in further files still join.
// Clusters below minOccurrences are discarded, but their members stay
// claimed and are never reseeded.
//
// Grouping is single-link against the seed only, not mutual, so a
// chain of pairwise-similar variants can split across seeds depending
// on order. That under-merge is an accepted trade-off for simplicity.
func BuildClusters(blocks []mirrorkit.Block, scorer mirrorkit.Scorer, threshold float64, minOccurrences int) []*mirrorkit.Cluster {
	claimed := make([]bool, len(blocks))
	var clusters []*mirrorkit.Cluster

	for i := range blocks {
		if claimed[i] {
			continue
		}
		seed := blocks[i]

		members := []mirrorkit.Block{seed}
		files := map[string]bool{seed.Path: true}

		for j := i + 1; j < len(blocks); j++ {
			b := blocks[j]
			if claimed[j] || files[b.Path] {
				continue
			}
			if scorer.Ratio(seed.Content, b.Content) >= threshold {
				members = append(members, b)
				files[b.Path] = true
				claimed[j] = true
			}
		}

		if len(members) < minOccurrences {
			continue
		}

		claimed[i] = true
		clusters = append(clusters, &mirrorkit.Cluster{
			ID:     fmt.Sprintf("%s_%d", seed.Type, len(clusters)),
			Type:   seed.Type,
			Blocks: members,
		})
	}

	return clusters
}
