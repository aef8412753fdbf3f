// Package bloom provides probabilistic URL deduplication so a batch never
// fetches the same search-result page twice.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter behind a mutex so concurrent workers can
// share one seen-set. A false positive skips a page that was never
// fetched; acceptable at the configured rate, since skipped pages only
// cost a harvesting opportunity, never correctness.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the URL and reports whether it was already present.
// Test-and-add is atomic, so two workers racing on the same URL agree
// that exactly one of them saw it first.
func (f *Filter) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f.TestString(url) {
		return true
	}
	f.f.AddString(url)
	return false
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
