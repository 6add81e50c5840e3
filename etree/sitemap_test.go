package etree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/etree"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("lists page files with locations and dates", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "index.php"), "<p>home</p>")
		writeFile(t, filepath.Join(root, "about.php"), "<p>about</p>")
		writeFile(t, filepath.Join(root, "sub", "gallery.php"), "<p>gallery</p>")
		writeFile(t, filepath.Join(root, "css", "style.css"), "body{}")

		doc, err := etree.NewGenerator("https://example.com").Generate(root)

		require.NoError(t, err)
		urlset := doc.Root()
		require.NotNil(t, urlset)
		assert.Equal(t, "urlset", urlset.Tag)
		assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", urlset.SelectAttrValue("xmlns", ""))

		var locs []string
		for _, entry := range urlset.SelectElements("url") {
			loc := entry.SelectElement("loc")
			require.NotNil(t, loc)
			locs = append(locs, loc.Text())
			lastmod := entry.SelectElement("lastmod")
			require.NotNil(t, lastmod)
			assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, lastmod.Text())
		}
		assert.Equal(t, []string{
			"https://example.com/about.php",
			"https://example.com/",
			"https://example.com/sub/gallery.php",
		}, locs)
	})

	t.Run("skips the includes directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "index.php"), "<p>home</p>")
		writeFile(t, filepath.Join(root, mirrorkit.IncludesDir, "navigation_abc12345.php"), "<nav></nav>")

		doc, err := etree.NewGenerator("https://example.com").Generate(root)

		require.NoError(t, err)
		assert.Len(t, doc.Root().SelectElements("url"), 1)
	})
}

func TestGenerator_Write(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.php"), "<p>home</p>")

	require.NoError(t, etree.NewGenerator("https://example.com").Write(root))

	buf, err := os.ReadFile(filepath.Join(root, "sitemap.xml"))
	require.NoError(t, err)
	content := string(buf)
	assert.Contains(t, content, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, content, "<urlset")
	assert.Contains(t, content, "<loc>https://example.com/</loc>")
}
