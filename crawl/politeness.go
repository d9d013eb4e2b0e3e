package crawl

import (
	"context"
	"math/rand/v2"
	"time"
)

// Default politeness window between cases.
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 5 * time.Second
)

// Politeness sleeps a randomized duration between cases so the crawl
// does not present a fixed-interval signature to the target site.
type Politeness struct {
	min time.Duration
	max time.Duration
}

// NewPoliteness creates a Politeness with the given delay window.
// Non-positive or inverted bounds fall back to the defaults.
func NewPoliteness(min, max time.Duration) *Politeness {
	if min <= 0 || max < min {
		min, max = DefaultMinDelay, DefaultMaxDelay
	}
	return &Politeness{min: min, max: max}
}

// Wait sleeps a random duration within the window, or returns early
// with the context's error if it is canceled.
func (p *Politeness) Wait(ctx context.Context) error {
	d := p.min
	if span := p.max - p.min; span > 0 {
		d += time.Duration(rand.Int64N(int64(span)))
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
