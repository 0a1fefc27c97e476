// Package cache memoises built trees keyed by the xxhash of their input.
package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/htmltree"
)

// DefaultCapacity is the number of trees kept when no capacity is configured.
const DefaultCapacity = 128

// Ensure Builder implements htmltree.Builder.
var _ htmltree.Builder = (*Builder)(nil)

// Doorkeeper records input hashes. TestAndAdd reports whether the hash was
// probably seen before.
type Doorkeeper interface {
	TestAndAdd(key uint64) bool
}

type entry struct {
	input string
	tree  *htmltree.Tree
}

// Builder wraps a Builder and returns the stored tree for inputs it has
// built before. Stored trees are shared between callers and must not be
// modified. Entries are evicted in insertion order once capacity is reached.
type Builder struct {
	next       htmltree.Builder
	capacity   int
	doorkeeper Doorkeeper

	mu      sync.Mutex
	entries map[uint64]entry
	order   []uint64
	hits    int
	misses  int
}

// Option configures a Builder.
type Option func(*Builder)

// WithCapacity sets the maximum number of stored trees. Values below one
// are ignored.
func WithCapacity(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// WithDoorkeeper stores a tree only when its input was seen before, so that
// inputs built once do not evict frequently built ones.
func WithDoorkeeper(d Doorkeeper) Option {
	return func(b *Builder) {
		b.doorkeeper = d
	}
}

// NewBuilder creates a new caching Builder around next.
func NewBuilder(next htmltree.Builder, opts ...Option) *Builder {
	b := &Builder{
		next:     next,
		capacity: DefaultCapacity,
		entries:  make(map[uint64]entry),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the stored tree for html or builds and stores a new one.
// Errors are never stored.
func (b *Builder) Build(html string) (*htmltree.Tree, error) {
	key := xxhash.Sum64String(html)

	b.mu.Lock()
	if e, ok := b.entries[key]; ok && e.input == html {
		b.hits++
		b.mu.Unlock()
		return e.tree, nil
	}
	b.misses++
	b.mu.Unlock()

	tree, err := b.next.Build(html)
	if err != nil {
		return nil, err
	}

	if b.doorkeeper != nil && !b.doorkeeper.TestAndAdd(key) {
		return tree, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.entries[key]; !ok {
		for len(b.order) >= b.capacity {
			delete(b.entries, b.order[0])
			b.order = b.order[1:]
		}
		b.order = append(b.order, key)
	}
	b.entries[key] = entry{input: html, tree: tree}
	return tree, nil
}

// Stats reports cache counters.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Stats returns the current cache counters.
func (b *Builder) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{Hits: b.hits, Misses: b.misses, Entries: len(b.entries)}
}
