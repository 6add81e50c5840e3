package refactor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/difflib"
	"github.com/fcolombo/mirrorkit/fs"
	mkquery "github.com/fcolombo/mirrorkit/goquery"
	"github.com/fcolombo/mirrorkit/mock"
	"github.com/fcolombo/mirrorkit/refactor"
)

const (
	siteNav = `<div class="menu"><a href="/index.php">Home</a><a href="/about.php">About</a><a href="/contact.php">Contact</a></div>`

	siteFooter = `<footer><p>© 2009 Example Srl, Via Roma 1, Milano, all rights reserved</p></footer>`
)

func sitePage(title, main string) string {
	return `<html><head><title>` + title + `</title></head><body>` +
		siteNav + `<main>` + main + `</main>` + siteFooter + `</body></html>`
}

func writeSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	pages := map[string]string{
		"index.php":   sitePage("Home", "<p>welcome to the example site</p>"),
		"about.php":   sitePage("About", "<p>about the example company</p>"),
		"contact.php": sitePage("Contact", "<p>how to reach the example company</p>"),
	}
	for name, content := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}
	return root
}

func siteEngine() *refactor.Engine {
	scorer := difflib.NewScorer()
	return &refactor.Engine{
		Store:     fs.NewPageStore(),
		Extractor: mkquery.NewExtractor(),
		Scorer:    scorer,
		Locator:   mkquery.NewLocator(scorer),
		Artifacts: fs.NewArtifactWriter(),
		Config:    mirrorkit.DefaultConfig(),
	}
}

func TestEngine_SiteTree(t *testing.T) {
	t.Parallel()

	root := writeSite(t)

	result, err := siteEngine().Run(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.FilesScanned)
	assert.Equal(t, 2, result.Summary.ClustersRetained)
	assert.Equal(t, 6, result.Summary.Replacements)
	assert.Equal(t, 0, result.Summary.Unresolved)

	// Every page now references the shared includes instead of carrying
	// its own copies.
	for _, name := range []string{"index.php", "about.php", "contact.php"} {
		buf, err := os.ReadFile(filepath.Join(root, name))
		require.NoError(t, err)
		content := string(buf)
		assert.NotContains(t, content, "class=\"menu\"", name)
		assert.NotContains(t, content, "Via Roma", name)
		assert.Contains(t, content, "<?php include 'includes/navigation_", name)
		assert.Contains(t, content, "<?php include 'includes/footer_", name)
	}

	// The artifacts hold the canonical content verbatim.
	for _, c := range result.Clusters {
		artifact := result.Artifacts[c.ID]
		require.NotNil(t, artifact)
		buf, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(artifact.Path)))
		require.NoError(t, err)
		assert.Equal(t, c.Canonical().Content, string(buf))
	}
}

func TestEngine_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	root := writeSite(t)

	_, err := siteEngine().Run(context.Background(), root)
	require.NoError(t, err)

	before := readTree(t, root)

	result, err := siteEngine().Run(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.FilesScanned)
	assert.Equal(t, 0, result.Summary.ClustersRetained)
	assert.Equal(t, 0, result.Summary.Replacements)
	assert.Equal(t, before, readTree(t, root))
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			return nil
		}
		buf, err := os.ReadFile(path)
		require.NoError(t, err)
		tree[path] = string(buf)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestEngine_RecordsRun(t *testing.T) {
	t.Parallel()

	root := writeSite(t)
	var recorded *mirrorkit.Run
	engine := siteEngine()
	engine.Recorder = &mock.RunRecorder{
		RecordRunFn: func(_ context.Context, run *mirrorkit.Run) error {
			recorded = run
			return nil
		},
	}

	result, err := engine.Run(context.Background(), root)

	require.NoError(t, err)
	require.NotNil(t, recorded)
	assert.Equal(t, root, recorded.Root)
	assert.Equal(t, result.Summary, recorded.Summary)
	assert.Len(t, recorded.Records, 6)
	assert.False(t, recorded.StartedAt.IsZero())
	assert.False(t, recorded.StartedAt.After(recorded.FinishedAt))
}

func TestEngine_InvalidConfig(t *testing.T) {
	t.Parallel()

	engine := siteEngine()
	engine.Config.MinOccurrences = 1

	_, err := engine.Run(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Equal(t, mirrorkit.EINVALID, mirrorkit.ErrorCode(err))
}
