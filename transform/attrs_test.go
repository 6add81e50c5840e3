package transform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcolombo/mirrorkit/transform"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFileT(t *testing.T, path string) string {
	t.Helper()
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(buf)
}

func TestIsProbablyURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"https://example.com/img.jpg", true},
		{"http://example.com", true},
		{"//cdn.example.com/lib.js", true},
		{"/img/banner.jpg", true},
		{"./style.css", true},
		{"../shared/logo.png", true},
		{"img/photo.jpg", true},
		{"page.html", true},
		{"contact.asp.html", true},
		{"", false},
		{"not a url", false},
		{"plainword", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, transform.IsProbablyURL(tt.value))
		})
	}
}

func TestTransformer_CheckAttrs(t *testing.T) {
	t.Parallel()

	t.Run("collects lazy-load URLs and rewrites same-domain values", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "index.html"),
			`<html><head></head><body>`+
				`<img data-lazyload="https://example.com/img/banner.jpg">`+
				`<img data-src="/img/logo.png">`+
				`<div data-bkg="not a url value"></div>`+
				`</body></html>`)

		tr := &transform.Transformer{}
		urls, err := tr.CheckAttrs(context.Background(), "https://example.com", root, transform.DefaultAttrs)

		require.NoError(t, err)
		assert.Contains(t, urls, "https://example.com/img/banner.jpg")
		assert.Contains(t, urls, "https://example.com/img/logo.png")
		assert.Len(t, urls, 2)

		content := readFileT(t, filepath.Join(root, "index.html"))
		assert.Contains(t, content, `data-lazyload="/img/banner.jpg"`)
		assert.Contains(t, content, `data-src="/img/logo.png"`)
	})

	t.Run("deduplicates across files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		page := `<html><body><img data-src="/img/shared.png"></body></html>`
		writeFile(t, filepath.Join(root, "a.html"), page)
		writeFile(t, filepath.Join(root, "b.html"), page)

		tr := &transform.Transformer{}
		urls, err := tr.CheckAttrs(context.Background(), "https://example.com", root, transform.DefaultAttrs)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/img/shared.png"}, urls)
	})

	t.Run("empty attribute list finds nothing", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.html"),
			`<html><body><img data-src="/img/x.png"></body></html>`)

		tr := &transform.Transformer{}
		urls, err := tr.CheckAttrs(context.Background(), "https://example.com", root, "")

		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}
