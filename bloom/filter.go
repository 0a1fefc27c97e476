// Package bloom provides a probabilistic set of input hashes, used as a
// cache admission doorkeeper.
package bloom

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter over 64-bit keys. It is safe for concurrent
// use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd adds key to the filter and reports whether it might have been
// present before. False positives are possible; false negatives are not.
func (f *Filter) TestAndAdd(key uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAdd(binary.BigEndian.AppendUint64(nil, key))
}
