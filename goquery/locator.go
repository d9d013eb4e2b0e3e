// Package goquery provides a goquery-based implementation of
// laborcrawl.ContentLocator for the judicial records site.
package goquery

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/hylin/laborcrawl"
)

// DefaultMinContentLen is the minimum rune count below which a selector
// match is considered unreliable UI noise rather than a judgment body.
const DefaultMinContentLen = 100

// primarySelector matches the preformatted judgment body. The site also
// uses the same class for short UI fragments, so candidates must be
// ranked by length.
const primarySelector = ".text-pre"

// secondarySelectors are tried in order when the primary selector has no
// matches at all.
var secondarySelectors = []string{"div.col-td", "form"}

// Ensure Locator implements laborcrawl.ContentLocator at compile time.
var _ laborcrawl.ContentLocator = (*Locator)(nil)

// Locator finds the authoritative judgment text within detail-view HTML.
// It selects the longest candidate matching the primary selector and
// degrades through secondary selectors to the whole-document text.
// Locate never fails; degraded outcomes are logged as warnings.
type Locator struct {
	minLen int
	logger *slog.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithMinContentLen overrides the minimum content length threshold.
func WithMinContentLen(n int) Option {
	return func(l *Locator) {
		l.minLen = n
	}
}

// WithLogger sets the logger for degraded-locate warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a new Locator.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{
		minLen: DefaultMinContentLen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the judgment body text for the given HTML.
//
// Strategy: among all primary-selector matches, take the longest text;
// if it is still below the minimum length the selector is treated as
// unreliable and the whole document wins. With no primary matches the
// secondary selectors are tried in fixed order before the same
// whole-document fallback.
func (l *Locator) Locate(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		l.logger.Warn("content locate: unparsable HTML, returning empty", "err", err)
		return ""
	}

	if text, ok := l.longestMatch(doc, primarySelector); ok {
		if utf8.RuneCountInString(text) >= l.minLen {
			return text
		}
		l.logger.Warn("content locate: primary match below threshold, using whole document",
			"selector", primarySelector,
			"len", utf8.RuneCountInString(text),
			"min", l.minLen,
		)
		return documentText(doc)
	}

	for _, sel := range secondarySelectors {
		if text, ok := l.longestMatch(doc, sel); ok {
			l.logger.Warn("content locate: primary selector missed, used secondary", "selector", sel)
			return text
		}
	}

	l.logger.Warn("content locate: no selector matched, using whole document")
	return documentText(doc)
}

// longestMatch returns the longest trimmed text among elements matching
// the selector. The second result is false when nothing matched.
func (l *Locator) longestMatch(doc *goquery.Document, selector string) (string, bool) {
	var (
		best    string
		bestLen = -1
		found   bool
	)
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		found = true
		text := strings.TrimSpace(sel.Text())
		if n := utf8.RuneCountInString(text); n > bestLen {
			best = text
			bestLen = n
		}
	})
	return best, found
}

// documentText extracts the whole document's visible text.
func documentText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() > 0 {
		return strings.TrimSpace(body.Text())
	}
	return strings.TrimSpace(doc.Text())
}
