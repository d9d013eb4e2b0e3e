// Package mock provides function-field mock implementations of the
// laborcrawl domain interfaces for tests.
package mock

import (
	"context"

	"github.com/hylin/laborcrawl"
)

var _ laborcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of laborcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ laborcrawl.ExtractionClient = (*ExtractionClient)(nil)

// ExtractionClient is a mock implementation of laborcrawl.ExtractionClient.
type ExtractionClient struct {
	ExtractFn func(ctx context.Context, text string) (string, error)
}

func (c *ExtractionClient) Extract(ctx context.Context, text string) (string, error) {
	return c.ExtractFn(ctx, text)
}

var _ laborcrawl.ContentLocator = (*ContentLocator)(nil)

// ContentLocator is a mock implementation of laborcrawl.ContentLocator.
type ContentLocator struct {
	LocateFn func(html string) string
}

func (l *ContentLocator) Locate(html string) string {
	return l.LocateFn(html)
}

var _ laborcrawl.SearchNavigator = (*SearchNavigator)(nil)

// SearchNavigator is a mock implementation of laborcrawl.SearchNavigator.
type SearchNavigator struct {
	StartFn       func(ctx context.Context) error
	HarvestPageFn func(ctx context.Context) ([]laborcrawl.CaseTask, error)
	NextPageFn    func(ctx context.Context) (bool, error)
	CloseFn       func() error
}

func (n *SearchNavigator) Start(ctx context.Context) error {
	return n.StartFn(ctx)
}

func (n *SearchNavigator) HarvestPage(ctx context.Context) ([]laborcrawl.CaseTask, error) {
	return n.HarvestPageFn(ctx)
}

func (n *SearchNavigator) NextPage(ctx context.Context) (bool, error) {
	return n.NextPageFn(ctx)
}

func (n *SearchNavigator) Close() error {
	if n.CloseFn == nil {
		return nil
	}
	return n.CloseFn()
}

var _ laborcrawl.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of laborcrawl.ResultStore.
type ResultStore struct {
	LoadFn   func(ctx context.Context) ([]*laborcrawl.ResultRow, error)
	AppendFn func(ctx context.Context, row *laborcrawl.ResultRow) error
	SeenFn   func(url string) bool
	LenFn    func() int
}

func (s *ResultStore) Load(ctx context.Context) ([]*laborcrawl.ResultRow, error) {
	return s.LoadFn(ctx)
}

func (s *ResultStore) Append(ctx context.Context, row *laborcrawl.ResultRow) error {
	return s.AppendFn(ctx, row)
}

func (s *ResultStore) Seen(url string) bool {
	if s.SeenFn == nil {
		return false
	}
	return s.SeenFn(url)
}

func (s *ResultStore) Len() int {
	if s.LenFn == nil {
		return 0
	}
	return s.LenFn()
}

var _ laborcrawl.JudgmentService = (*JudgmentService)(nil)

// JudgmentService is a mock implementation of laborcrawl.JudgmentService.
type JudgmentService struct {
	SaveJudgmentFn      func(ctx context.Context, j *laborcrawl.Judgment) error
	FindJudgmentByURLFn func(ctx context.Context, url string) (*laborcrawl.Judgment, error)
	CountJudgmentsFn    func(ctx context.Context) (int, error)
}

func (s *JudgmentService) SaveJudgment(ctx context.Context, j *laborcrawl.Judgment) error {
	return s.SaveJudgmentFn(ctx, j)
}

func (s *JudgmentService) FindJudgmentByURL(ctx context.Context, url string) (*laborcrawl.Judgment, error) {
	return s.FindJudgmentByURLFn(ctx, url)
}

func (s *JudgmentService) CountJudgments(ctx context.Context) (int, error) {
	return s.CountJudgmentsFn(ctx)
}
