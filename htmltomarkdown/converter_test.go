package htmltomarkdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/htmltomarkdown"
)

// Ensure Converter implements mirrorkit.Converter at compile time.
var _ mirrorkit.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts a navigation block to a link list", func(t *testing.T) {
		t.Parallel()

		html := `<nav><ul><li><a href="/index.php">Home</a></li><li><a href="/about.php">About</a></li></ul></nav>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Home](/index.php)")
		assert.Contains(t, md, "[About](/about.php)")
	})

	t.Run("converts a footer paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<footer><p><strong>Example Srl</strong>, Via Roma 1, Milano</p></footer>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Example Srl**")
		assert.Contains(t, md, "Via Roma 1, Milano")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><h2>Subtitle</h2>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, mirrorkit.EINVALID, mirrorkit.ErrorCode(err))
	})
}
