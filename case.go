package laborcrawl

import (
	"context"
	"time"
)

// CaseTask represents one discovered judgment link awaiting processing.
// The URL is absolute and serves as the deduplication key.
type CaseTask struct {
	URL   string
	Title string
}

// Validate returns an error if the task contains invalid fields.
func (t *CaseTask) Validate() error {
	if t.URL == "" {
		return Errorf(EINVALID, "case task URL required")
	}
	return nil
}

// ResultRow is one successfully processed case. Rows are unique by URL;
// the store's seen set enforces this across sessions.
type ResultRow struct {
	CaseID        string
	Date          string
	URL           string
	JobTitle      *string
	MonthlySalary *float64
	RawJSON       string
}

// Validate returns an error if the row contains invalid fields.
func (r *ResultRow) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "result row URL required")
	}
	return nil
}

// ResultStore persists result rows to a durable table.
//
// Load reads the full table into memory and seeds the seen-URL set; a
// malformed table yields empty state, never an error that would block a
// fresh crawl. Append adds a row, marks its URL seen, and rewrites the
// whole table so a crash loses at most the in-flight record.
type ResultStore interface {
	Load(ctx context.Context) ([]*ResultRow, error)
	Append(ctx context.Context, row *ResultRow) error

	// Seen reports whether a URL has already produced a row, either in
	// this session or in a prior one reloaded from disk.
	Seen(url string) bool

	// Len returns the number of rows currently held.
	Len() int
}

// Judgment is the full located judgment text for one case, archived
// before truncation so cases can be re-extracted without refetching.
type Judgment struct {
	ID          string
	CaseID      string
	URL         string
	Content     string
	ContentHash string
	FetchedAt   time.Time
}

// Validate returns an error if the judgment contains invalid fields.
func (j *Judgment) Validate() error {
	if j.URL == "" {
		return Errorf(EINVALID, "judgment URL required")
	}
	if j.Content == "" {
		return Errorf(EINVALID, "judgment content required")
	}
	return nil
}

// JudgmentService archives judgment texts.
type JudgmentService interface {
	// SaveJudgment inserts or replaces the archived text for a URL.
	SaveJudgment(ctx context.Context, j *Judgment) error

	// FindJudgmentByURL retrieves an archived judgment.
	// Returns ENOTFOUND if no judgment exists for the URL.
	FindJudgmentByURL(ctx context.Context, url string) (*Judgment, error)

	// CountJudgments returns the number of archived judgments.
	CountJudgments(ctx context.Context) (int, error)
}
