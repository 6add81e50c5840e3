package difflib_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcolombo/mirrorkit"
	"github.com/fcolombo/mirrorkit/difflib"
)

// Ensure Scorer implements mirrorkit.Scorer at compile time.
var _ mirrorkit.Scorer = (*difflib.Scorer)(nil)

func TestScorer_Ratio(t *testing.T) {
	t.Parallel()

	s := difflib.NewScorer()

	t.Run("identical spans score 1.0", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, s.Ratio("<nav>home</nav>", "<nav>home</nav>"))
	})

	t.Run("empty spans score 0.0 against content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, s.Ratio("", "<nav>home</nav>"))
		assert.Equal(t, 0.0, s.Ratio("<nav>home</nav>", ""))
	})

	t.Run("disjoint spans score low", func(t *testing.T) {
		t.Parallel()
		got := s.Ratio("aaaaaaaaaa", "zzzzzzzzzz")
		assert.Less(t, got, 0.1)
	})

	t.Run("small interior edits score high", func(t *testing.T) {
		t.Parallel()

		a := `<nav class="main-menu"><a href="/">Home</a><a href="/about.html">About</a></nav>`
		b := `<nav class="main-menu"><a href="/">Home</a> <a href="/about.html">About</a></nav>`

		got := s.Ratio(a, b)
		assert.GreaterOrEqual(t, got, 0.9)
	})

	t.Run("whitespace drift stays above the default threshold", func(t *testing.T) {
		t.Parallel()

		a := "<header>\n  <h1>Site</h1>\n  <p>tagline</p>\n</header>"
		b := "<header>\n\t<h1>Site</h1>\n\t<p>tagline</p>\n</header>"

		got := s.Ratio(a, b)
		assert.GreaterOrEqual(t, got, mirrorkit.DefaultSimilarityThreshold)
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()

		a := strings.Repeat("<li>item</li>", 10) + "<li>extra</li>"
		b := strings.Repeat("<li>item</li>", 10)

		assert.Equal(t, s.Ratio(a, b), s.Ratio(b, a))
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a := "<footer><p>© 2009 Example Srl</p></footer>"
		b := "<footer><p>© 2010 Example Srl</p></footer>"

		first := s.Ratio(a, b)
		for range 5 {
			assert.Equal(t, first, s.Ratio(a, b))
		}
	})

	t.Run("bounded in [0, 1]", func(t *testing.T) {
		t.Parallel()

		pairs := [][2]string{
			{"", ""},
			{"a", "b"},
			{"<div>x</div>", "<div>x</div><div>y</div>"},
		}
		for _, p := range pairs {
			got := s.Ratio(p[0], p[1])
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	})
}
