// Package fs provides file-based storage for crawl results.
package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hylin/laborcrawl"
)

// header is the result table's column layout. Raw_JSON carries the full
// serialized extraction record for audit and reprocessing.
var header = []string{"Case_ID", "Date", "URL", "Job_Title", "Monthly_Salary", "Raw_JSON"}

// Ensure ResultStore implements laborcrawl.ResultStore at compile time.
var _ laborcrawl.ResultStore = (*ResultStore)(nil)

// ResultStore persists result rows to a CSV table.
//
// Append rewrites the whole table after every accepted row, trading
// write amplification for crash-safety: a process kill loses at most the
// in-flight record. The rewrite goes through a temp file renamed over
// the target, so a concurrent reader (the dashboard) sees either the
// prior-complete or new-complete file.
//
// ResultStore is not safe for concurrent use; the crawl is sequential
// and the store is owned by a single session.
type ResultStore struct {
	path   string
	logger *slog.Logger

	rows []*laborcrawl.ResultRow
	seen map[string]struct{}
}

// Option configures a ResultStore.
type Option func(*ResultStore)

// WithLogger sets the logger for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *ResultStore) {
		s.logger = logger
	}
}

// NewResultStore creates a store backed by the CSV file at path.
// Call Load before the first Append.
func NewResultStore(path string, opts ...Option) *ResultStore {
	s := &ResultStore{
		path:   path,
		logger: slog.Default(),
		seen:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads any pre-existing table and seeds the seen-URL set from its
// URL column. A missing file yields empty state; so does a malformed
// one, with a warning, because a corrupt cache must never block a fresh
// crawl.
func (s *ResultStore) Load(ctx context.Context) ([]*laborcrawl.ResultRow, error) {
	s.rows = nil
	s.seen = make(map[string]struct{})

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn("result table unreadable, starting empty", "path", s.path, "err", err)
		return nil, nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn("result table malformed, starting empty", "path", s.path, "err", err)
			s.rows = nil
			s.seen = make(map[string]struct{})
			return nil, nil
		}
		if first {
			first = false
			continue // header
		}
		row, ok := rowFromRecord(record)
		if !ok {
			s.logger.Warn("skipping short result row", "path", s.path, "fields", len(record))
			continue
		}
		s.rows = append(s.rows, row)
		if row.URL != "" {
			s.seen[row.URL] = struct{}{}
		}
	}

	return s.rows, nil
}

// Append adds a row, marks its URL seen, and rewrites the table.
func (s *ResultStore) Append(ctx context.Context, row *laborcrawl.ResultRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.rows = append(s.rows, row)
	s.seen[row.URL] = struct{}{}

	return s.rewrite()
}

// Seen reports whether a URL already has a row.
func (s *ResultStore) Seen(url string) bool {
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of rows currently held.
func (s *ResultStore) Len() int {
	return len(s.rows)
}

// Path returns the table's file path.
func (s *ResultStore) Path() string {
	return s.path
}

// rewrite writes the full table to a temp file in the target directory
// and renames it over the target. Rename is atomic on POSIX, so readers
// never observe a partial table.
func (s *ResultStore) rewrite() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	for _, row := range s.rows {
		if err := w.Write(recordFromRow(row)); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

// rowFromRecord converts a CSV record into a ResultRow.
// Empty cells decode as nil fields.
func rowFromRecord(record []string) (*laborcrawl.ResultRow, bool) {
	if len(record) < len(header) {
		return nil, false
	}

	row := &laborcrawl.ResultRow{
		CaseID:  record[0],
		Date:    record[1],
		URL:     record[2],
		RawJSON: record[5],
	}
	if record[3] != "" {
		title := record[3]
		row.JobTitle = &title
	}
	if record[4] != "" {
		if n, err := strconv.ParseFloat(record[4], 64); err == nil {
			row.MonthlySalary = &n
		}
	}
	return row, true
}

// recordFromRow converts a ResultRow into a CSV record.
func recordFromRow(row *laborcrawl.ResultRow) []string {
	title := ""
	if row.JobTitle != nil {
		title = *row.JobTitle
	}
	salary := ""
	if row.MonthlySalary != nil {
		salary = strconv.FormatFloat(*row.MonthlySalary, 'f', -1, 64)
	}
	return []string{row.CaseID, row.Date, row.URL, title, salary, row.RawJSON}
}
