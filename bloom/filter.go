// Package bloom provides probabilistic in-session deduplication of
// harvested case URLs. The durable seen set reloaded from the result
// table stays exact; this filter only guards against the same link
// reappearing across result pages within one session, where a false
// positive costs at most one skipped case.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by case URL.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Remember records a case URL.
func (f *Filter) Remember(url string) {
	f.f.AddString(url)
}

// Seen returns true if the URL was probably remembered.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}
