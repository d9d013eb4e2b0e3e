// Package crawl orchestrates the end-to-end harvesting session: the
// navigator yields case links page by page, and each case flows through
// detail-view fetch, content location, truncation, extraction, parsing,
// and the result store.
package crawl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"github.com/hylin/laborcrawl"
)

// DefaultTruncateLen is the maximum rune count of judgment text sent to
// the extraction backend, bounding per-call cost and latency.
const DefaultTruncateLen = 4000

// Session drives one sequential crawl. One case is processed at a time:
// no concurrent detail views, no parallel backend calls. This bounds
// load on the court site and the backend and keeps the result store
// single-owner.
type Session struct {
	Navigator  laborcrawl.SearchNavigator
	Fetcher    laborcrawl.Fetcher
	Locator    laborcrawl.ContentLocator
	Extractor  laborcrawl.ExtractionClient
	Results    laborcrawl.ResultStore
	Archive    laborcrawl.JudgmentService // optional full-text archive
	Limiter    *HostLimiter               // optional request-rate cap
	Politeness *Politeness                // optional inter-case delay
	Logger     *slog.Logger

	// TruncateLen bounds extraction input in runes. Zero means
	// DefaultTruncateLen.
	TruncateLen int

	// MaxCases ends the session after this many saved rows. Zero means
	// unbounded.
	MaxCases int

	// RetryDelays configures detail-view fetch retries.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Summary reports the outcome of a session.
type Summary struct {
	Pages      int
	Discovered int
	Saved      int
	Skipped    int
}

// Run executes the session until the navigator is exhausted, the quota
// is reached, or the context is canceled. A per-case failure is logged
// with the case URL and skipped; only a failed session start or context
// cancellation is returned as an error.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	logger := s.logger()

	summary := &Summary{}

	if err := s.Navigator.Start(ctx); err != nil {
		// Nothing to crawl; the session ends cleanly with zero additions.
		return summary, err
	}

	frontier := NewFrontier()

	for {
		tasks, err := s.Navigator.HarvestPage(ctx)
		if err != nil {
			logger.Warn("page harvest failed, ending session", "err", err)
			break
		}
		summary.Pages++

		for _, task := range tasks {
			if frontier.Push(task) {
				summary.Discovered++
			}
		}

		for {
			task, ok := frontier.Pop()
			if !ok {
				break
			}
			if s.quotaReached(summary) {
				logger.Info("case quota reached", "saved", summary.Saved)
				return summary, nil
			}
			if s.Results.Seen(task.URL) {
				continue
			}

			if err := s.processTask(ctx, task); err != nil {
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				summary.Skipped++
				logger.Warn("case skipped", "url", task.URL, "err", err)
			} else {
				summary.Saved++
				logger.Info("case saved", "url", task.URL, "total", s.Results.Len())
			}

			if s.Politeness != nil {
				if err := s.Politeness.Wait(ctx); err != nil {
					return summary, err
				}
			}
		}

		if s.quotaReached(summary) {
			return summary, nil
		}

		more, err := s.Navigator.NextPage(ctx)
		if err != nil {
			logger.Warn("pagination failed, ending session", "err", err)
			break
		}
		if !more {
			break
		}
	}

	return summary, nil
}

// logger returns the configured logger or the process default.
func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// quotaReached reports whether the saved-case quota is met.
func (s *Session) quotaReached(summary *Summary) bool {
	return s.MaxCases > 0 && summary.Saved >= s.MaxCases
}

// processTask runs one case through the pipeline. Any error means "no
// row for this case"; the session continues.
func (s *Session) processTask(ctx context.Context, task laborcrawl.CaseTask) error {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, hostOf(task.URL)); err != nil {
			return err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, task.URL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		return err
	}

	text := s.Locator.Locate(html)

	if s.Archive != nil && text != "" {
		j := &laborcrawl.Judgment{CaseID: task.Title, URL: task.URL, Content: text}
		if err := s.Archive.SaveJudgment(ctx, j); err != nil {
			// Archival is best-effort; the row can still be produced.
			s.logger().Warn("judgment archive failed", "url", task.URL, "err", err)
		}
	}

	truncateLen := s.TruncateLen
	if truncateLen <= 0 {
		truncateLen = DefaultTruncateLen
	}
	truncated := laborcrawl.TruncateRunes(text, truncateLen)

	raw, err := s.Extractor.Extract(ctx, truncated)
	if err != nil {
		return err
	}

	rec, err := laborcrawl.ParseRecord(raw)
	if err != nil {
		return err
	}

	rawJSON, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	row := &laborcrawl.ResultRow{
		CaseID:        task.Title,
		Date:          DateFromURL(task.URL),
		URL:           task.URL,
		JobTitle:      rec.JobTitle,
		MonthlySalary: rec.MonthlySalary,
		RawJSON:       string(rawJSON),
	}
	return s.Results.Append(ctx, row)
}

// hostOf returns the URL's host, or the raw string when unparsable so
// rate limiting still applies per unique key.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// urlDateRE matches the YYYYMMDD component of a judgment URL's id
// parameter, e.g. id=TNHV,113,重勞上,4,20241231,1.
var urlDateRE = regexp.MustCompile(`,(\d{8}),`)

// DateFromURL extracts the judgment date embedded in a detail URL.
// Returns "Unknown" when no date component is present.
func DateFromURL(rawURL string) string {
	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		decoded = rawURL
	}
	m := urlDateRE.FindStringSubmatch(decoded)
	if m == nil {
		return "Unknown"
	}
	d := m[1]
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}
