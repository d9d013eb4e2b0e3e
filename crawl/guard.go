package crawl

import (
	"context"
	"unicode/utf8"

	"github.com/hylin/laborcrawl"
)

// DefaultMinInputLen is the minimum rune count of located text worth an
// extraction call. Shorter captures are selector noise, not judgments.
const DefaultMinInputLen = 50

// Ensure GuardedClient implements laborcrawl.ExtractionClient.
var _ laborcrawl.ExtractionClient = (*GuardedClient)(nil)

// GuardedClient rejects inputs below a minimum meaningful length before
// they reach the backend, so garbage captures never cost a model call.
type GuardedClient struct {
	next   laborcrawl.ExtractionClient
	minLen int
}

// NewGuardedClient wraps next with a minimum input length.
// A minLen of zero or less uses DefaultMinInputLen.
func NewGuardedClient(next laborcrawl.ExtractionClient, minLen int) *GuardedClient {
	if minLen <= 0 {
		minLen = DefaultMinInputLen
	}
	return &GuardedClient{next: next, minLen: minLen}
}

// Extract delegates to the wrapped client unless the input is too short.
func (c *GuardedClient) Extract(ctx context.Context, text string) (string, error) {
	if n := utf8.RuneCountInString(text); n < c.minLen {
		return "", laborcrawl.Errorf(laborcrawl.EINVALID, "input too short for extraction: %d runes (min %d)", n, c.minLen)
	}
	return c.next.Extract(ctx, text)
}
