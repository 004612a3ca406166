package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_PlainText(t *testing.T) {
	doc := Format("My Day\n\nI went to school.\nWe had fun.\n\nCONCLUSION:\nIt was fun.")
	assert.Equal(t, "My Day\n\nI went to school.\nWe had fun.\n\nCONCLUSION:\n\nIt was fun.", doc.PlainText())
	assert.Equal(t, "", Document{}.PlainText())
}

func TestDocument_Markdown(t *testing.T) {
	doc := Format("My Day\n\nHowever, it rained.")
	assert.Equal(t, "## My Day\n\n**However**\\, it rained\\.", doc.Markdown())
}

func TestRenderHTML(t *testing.T) {
	t.Run("structure", func(t *testing.T) {
		out, err := RenderHTML(Format("My Day\n\nHowever, it rained.\n\nNOTES:\nbring a coat."))
		require.NoError(t, err)
		assert.Contains(t, out, "<h2>My Day</h2>")
		assert.Contains(t, out, "<strong>However</strong>, it rained.")
		assert.Contains(t, out, "<h3>NOTES:</h3>")
	})

	t.Run("model markup stays text", func(t *testing.T) {
		out, err := RenderHTML(Format("My Day\nsee <script>x</script> here"))
		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("empty", func(t *testing.T) {
		out, err := RenderHTML(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) ObserveFormatCache(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func TestCache(t *testing.T) {
	obs := &countingObserver{}
	c, err := NewCache(2, obs)
	require.NoError(t, err)

	first := c.Format("My Day\n\nIt was fun.")
	second := c.Format("My Day\n\nIt was fun.")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)

	c.Format("one")
	c.Format("two")
	assert.Equal(t, 2, c.Len())

	// The first entry was evicted, so this is a miss again.
	c.Format("My Day\n\nIt was fun.")
	assert.Equal(t, 4, obs.misses)
}

func TestNewCache_DefaultSize(t *testing.T) {
	c, err := NewCache(0, nil)
	require.NoError(t, err)
	assert.Equal(t, "text", c.Format("text").PlainText())
}
