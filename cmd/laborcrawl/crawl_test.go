package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hylin/laborcrawl"
	main "github.com/hylin/laborcrawl/cmd/laborcrawl"
	"github.com/hylin/laborcrawl/crawl"
	"github.com/hylin/laborcrawl/fs"
	"github.com/hylin/laborcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves harvested cases and prints a summary", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "results.csv")
		store := fs.NewResultStore(path, fs.WithLogger(discardLogger()))

		pages := 0
		navigator := &mock.SearchNavigator{
			StartFn: func(ctx context.Context) error { return nil },
			HarvestPageFn: func(ctx context.Context) ([]laborcrawl.CaseTask, error) {
				return []laborcrawl.CaseTask{
					{URL: "https://judgment.judicial.gov.tw/FJUD/data.aspx?id=1", Title: "113年勞訴1號"},
					{URL: "https://judgment.judicial.gov.tw/FJUD/data.aspx?id=2", Title: "113年勞訴2號"},
				}, nil
			},
			NextPageFn: func(ctx context.Context) (bool, error) {
				pages++
				return false, nil
			},
		}

		session := &crawl.Session{
			Navigator: navigator,
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html><div class='text-pre'>judgment text</div></html>", nil
				},
			},
			Locator: &mock.ContentLocator{
				LocateFn: func(html string) string { return "原告擔任作業員，月薪新臺幣35000元" },
			},
			Extractor: &mock.ExtractionClient{
				ExtractFn: func(ctx context.Context, text string) (string, error) {
					return `{"job_title":"作業員","monthly_salary":35000}`, nil
				},
			},
			Results:     store,
			Logger:      discardLogger(),
			RetryDelays: []time.Duration{},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     testContext(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: store,
			Session: session,
		}

		cmd := &main.CrawlCmd{}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "saved 2")
		assert.Contains(t, stdout.String(), path)
		assert.Equal(t, 1, pages)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "作業員")
		assert.Contains(t, string(data), "35000")
	})

	t.Run("returns error when the session cannot start", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "results.csv")
		store := fs.NewResultStore(path, fs.WithLogger(discardLogger()))

		session := &crawl.Session{
			Navigator: &mock.SearchNavigator{
				StartFn: func(ctx context.Context) error {
					return laborcrawl.Errorf(laborcrawl.ENOTFOUND, "no frame contains result links")
				},
			},
			Results: store,
			Logger:  discardLogger(),
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     testContext(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: store,
			Session: session,
		}

		cmd := &main.CrawlCmd{}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.NoFileExists(t, path, "a failed start must add nothing")
	})

	t.Run("reports resumed row count from a prior run", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "results.csv")

		// Seed a prior run's table.
		prior := fs.NewResultStore(path, fs.WithLogger(discardLogger()))
		_, err := prior.Load(testContext())
		require.NoError(t, err)
		require.NoError(t, prior.Append(testContext(), &laborcrawl.ResultRow{
			CaseID: "112年勞訴9號",
			Date:   "2023-11-01",
			URL:    "https://judgment.judicial.gov.tw/FJUD/data.aspx?id=9",
		}))

		store := fs.NewResultStore(path, fs.WithLogger(discardLogger()))
		session := &crawl.Session{
			Navigator: &mock.SearchNavigator{
				StartFn: func(ctx context.Context) error { return nil },
				HarvestPageFn: func(ctx context.Context) ([]laborcrawl.CaseTask, error) {
					return nil, nil
				},
				NextPageFn: func(ctx context.Context) (bool, error) { return false, nil },
			},
			Results: store,
			Logger:  discardLogger(),
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     testContext(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Results: store,
			Session: session,
		}

		cmd := &main.CrawlCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Resuming: 1 cases")
	})
}
