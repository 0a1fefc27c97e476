package htmltree_test

import (
	"testing"

	"github.com/fwojciec/htmltree"
	"github.com/stretchr/testify/assert"
)

func TestTagSet(t *testing.T) {
	t.Parallel()

	t.Run("normalizes tag names", func(t *testing.T) {
		t.Parallel()

		s := htmltree.NewTagSet(" Script ", "STYLE", "", "script")

		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Has("script"))
		assert.True(t, s.Has("Style"))
		assert.False(t, s.Has("p"))
		assert.Equal(t, []string{"script", "style"}, s.Tags())
	})

	t.Run("zero value is empty", func(t *testing.T) {
		t.Parallel()

		var s htmltree.TagSet

		assert.False(t, s.Has("script"))
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Tags())
	})

	t.Run("default set contains script and style", func(t *testing.T) {
		t.Parallel()

		s := htmltree.DefaultIrrelevantTags()

		assert.True(t, s.Has("script"))
		assert.True(t, s.Has("style"))
		assert.False(t, s.Has("p"))
		assert.False(t, s.Has("strong"))
	})
}
