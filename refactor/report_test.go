package refactor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/mock"
	"github.com/fcolombo/mirrorkit/refactor"
)

func TestBuildReport(t *testing.T) {
	t.Parallel()

	nav := `<nav><a href="/">Home</a><a href="/about.html">About</a></nav>`
	result := &refactor.Result{
		Summary: mirrorkit.Summary{FilesScanned: 3, ClustersRetained: 1, Replacements: 3},
		Run: &mirrorkit.Run{
			ID:         "run-1",
			Root:       "/site",
			FinishedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		},
		Clusters: []*mirrorkit.Cluster{{
			ID:   "navigation_0",
			Type: mirrorkit.BlockNavigation,
			Blocks: []mirrorkit.Block{
				block(mirrorkit.BlockNavigation, nav, "a.php"),
				block(mirrorkit.BlockNavigation, nav, "b.php"),
			},
		}},
		Artifacts: map[string]*mirrorkit.Artifact{
			"navigation_0": {Path: "includes/navigation_abc12345.php"},
		},
	}

	t.Run("renders run metadata and cluster membership", func(t *testing.T) {
		t.Parallel()

		converter := &mock.Converter{ConvertFn: func(string) (string, error) {
			return "[Home](/) [About](/about.html)", nil
		}}

		report := refactor.BuildReport(result, converter)

		assert.Contains(t, report, "# Refactor run run-1")
		assert.Contains(t, report, "Root: `/site`")
		assert.Contains(t, report, "Files scanned: 3")
		assert.Contains(t, report, "## navigation_0")
		assert.Contains(t, report, "Include: `includes/navigation_abc12345.php`")
		assert.Contains(t, report, "- `a.php`")
		assert.Contains(t, report, "- `b.php`")
		assert.Contains(t, report, "[Home](/)")
	})

	t.Run("conversion failure falls back to raw content", func(t *testing.T) {
		t.Parallel()

		converter := &mock.Converter{ConvertFn: func(string) (string, error) {
			return "", mirrorkit.Errorf(mirrorkit.EINVALID, "empty input")
		}}

		report := refactor.BuildReport(result, converter)

		assert.Contains(t, report, nav)
	})

	t.Run("nil converter uses raw content", func(t *testing.T) {
		t.Parallel()

		report := refactor.BuildReport(result, nil)

		assert.Contains(t, report, nav)
	})
}
