package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/hylin/laborcrawl"
)

// Compile-time interface verification.
var _ laborcrawl.JudgmentService = (*JudgmentService)(nil)

// JudgmentService implements laborcrawl.JudgmentService using SQLite.
// It archives the full located judgment text per URL so cases can be
// re-extracted without refetching from the court site.
type JudgmentService struct {
	db *DB
}

// NewJudgmentService creates a new JudgmentService.
func NewJudgmentService(db *DB) *JudgmentService {
	return &JudgmentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// SaveJudgment inserts or replaces the archived text for a URL.
// A re-probe of the same case overwrites the previous capture.
func (s *JudgmentService) SaveJudgment(ctx context.Context, j *laborcrawl.Judgment) error {
	if err := j.Validate(); err != nil {
		return err
	}

	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	j.FetchedAt = time.Now().UTC()
	j.ContentHash = hashContent(j.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO judgments (id, case_id, url, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			case_id = excluded.case_id,
			content = excluded.content,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, j.ID, j.CaseID, j.URL, j.Content, j.ContentHash, j.FetchedAt.Format(time.RFC3339))

	return err
}

// FindJudgmentByURL retrieves an archived judgment.
func (s *JudgmentService) FindJudgmentByURL(ctx context.Context, url string) (*laborcrawl.Judgment, error) {
	var j laborcrawl.Judgment
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, url, content, content_hash, fetched_at
		FROM judgments
		WHERE url = ?
	`, url).Scan(&j.ID, &j.CaseID, &j.URL, &j.Content, &j.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, laborcrawl.Errorf(laborcrawl.ENOTFOUND, "judgment not found for %q", url)
	}
	if err != nil {
		return nil, err
	}

	j.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &j, nil
}

// CountJudgments returns the number of archived judgments.
func (s *JudgmentService) CountJudgments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM judgments`).Scan(&n)
	return n, err
}
