package cache_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/htmltree"
	"github.com/fwojciec/htmltree/bloom"
	"github.com/fwojciec/htmltree/cache"
	"github.com/fwojciec/htmltree/html"
	"github.com/fwojciec/htmltree/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingBuilder returns a mock builder producing a fresh tree per call and
// the counter of its calls.
func countingBuilder() (*mock.Builder, *atomic.Int32) {
	var calls atomic.Int32
	return &mock.Builder{
		BuildFn: func(src string) (*htmltree.Tree, error) {
			calls.Add(1)
			return &htmltree.Tree{Children: []htmltree.Node{}, SourceEnd: len(src)}, nil
		},
	}, &calls
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored tree for repeated input", func(t *testing.T) {
		t.Parallel()

		inner, calls := countingBuilder()
		b := cache.NewBuilder(inner)

		first, err := b.Build("<p>a</p>")
		require.NoError(t, err)
		second, err := b.Build("<p>a</p>")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, cache.Stats{Hits: 1, Misses: 1, Entries: 1}, b.Stats())
	})

	t.Run("builds distinct inputs separately", func(t *testing.T) {
		t.Parallel()

		inner, calls := countingBuilder()
		b := cache.NewBuilder(inner)

		first, err := b.Build("<p>a</p>")
		require.NoError(t, err)
		second, err := b.Build("<p>b</p>")
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("evicts the oldest entry at capacity", func(t *testing.T) {
		t.Parallel()

		inner, calls := countingBuilder()
		b := cache.NewBuilder(inner, cache.WithCapacity(2))

		for _, src := range []string{"a", "b", "c", "b", "a"} {
			_, err := b.Build(src)
			require.NoError(t, err)
		}

		// a is evicted by c, b stays, a is built again.
		assert.Equal(t, int32(4), calls.Load())
		assert.Equal(t, 2, b.Stats().Entries)
	})

	t.Run("does not store errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		inner := &mock.Builder{
			BuildFn: func(src string) (*htmltree.Tree, error) {
				calls.Add(1)
				return nil, htmltree.Errorf(htmltree.EINTERNAL, "boom")
			},
		}
		b := cache.NewBuilder(inner)

		_, err := b.Build("x")
		require.Error(t, err)
		_, err = b.Build("x")
		require.Error(t, err)

		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, 0, b.Stats().Entries)
	})

	t.Run("stores a tree only on the second sighting with a doorkeeper", func(t *testing.T) {
		t.Parallel()

		inner, calls := countingBuilder()
		b := cache.NewBuilder(inner, cache.WithDoorkeeper(bloom.NewFilter(100, 0.01)))

		for range 3 {
			_, err := b.Build("<p>again</p>")
			require.NoError(t, err)
		}

		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, cache.Stats{Hits: 1, Misses: 2, Entries: 1}, b.Stats())
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		b := cache.NewBuilder(html.NewBuilder(), cache.WithCapacity(4))
		inputs := []string{"<p>a</p>", "<p><b>b</b></p>", "<h1>c</h1>", "<div><p>d</p></div>", "<pre>e</pre>"}

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tree, err := b.Build(inputs[i%len(inputs)])
				assert.NoError(t, err)
				assert.NotNil(t, tree)
			}()
		}
		wg.Wait()

		stats := b.Stats()
		assert.Equal(t, 50, stats.Hits+stats.Misses)
		assert.LessOrEqual(t, stats.Entries, 4)
	})
}
