package main_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/hylin/laborcrawl"
	main "github.com/hylin/laborcrawl/cmd/laborcrawl"
	"github.com/hylin/laborcrawl/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedResults(t *testing.T, rows []*laborcrawl.ResultRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results.csv")
	store := fs.NewResultStore(path, fs.WithLogger(discardLogger()))
	_, err := store.Load(testContext())
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, store.Append(testContext(), row))
	}
	return path
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("summarizes counts, mean, and top salaries", func(t *testing.T) {
		t.Parallel()

		path := seedResults(t, []*laborcrawl.ResultRow{
			{CaseID: "113年勞訴1號", Date: "2024-01-15", URL: "https://j.example/1", JobTitle: strPtr("作業員"), MonthlySalary: floatPtr(30000)},
			{CaseID: "113年勞訴2號", Date: "2024-02-20", URL: "https://j.example/2", JobTitle: strPtr("工程師"), MonthlySalary: floatPtr(60000)},
			{CaseID: "113年勞訴3號", Date: "2024-03-05", URL: "https://j.example/3"},
		})

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.StatsCmd{Input: path, Top: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Total cases:        3")
		assert.Contains(t, out, "Cases with salary:  2")
		assert.Contains(t, out, "Mean monthly salary: 45000")
		// Highest salary listed first.
		assert.Contains(t, out, "1. 60000  工程師")
		assert.Contains(t, out, "2. 30000  作業員")
	})

	t.Run("caps the top list at the requested size", func(t *testing.T) {
		t.Parallel()

		path := seedResults(t, []*laborcrawl.ResultRow{
			{CaseID: "a", URL: "https://j.example/1", MonthlySalary: floatPtr(10000)},
			{CaseID: "b", URL: "https://j.example/2", MonthlySalary: floatPtr(20000)},
			{CaseID: "c", URL: "https://j.example/3", MonthlySalary: floatPtr(30000)},
		})

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.StatsCmd{Input: path, Top: 2}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Top 2 salaries:")
		assert.Contains(t, out, "30000")
		assert.Contains(t, out, "20000")
		assert.NotContains(t, out, "3. ")
	})

	t.Run("handles a missing table", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.StatsCmd{Input: filepath.Join(t.TempDir(), "absent.csv"), Top: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No results")
	})

	t.Run("handles rows without any salary", func(t *testing.T) {
		t.Parallel()

		path := seedResults(t, []*laborcrawl.ResultRow{
			{CaseID: "a", URL: "https://j.example/1"},
		})

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: stdout, Stderr: &bytes.Buffer{}}

		cmd := &main.StatsCmd{Input: path, Top: 5}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Cases with salary:  0")
		assert.NotContains(t, out, "Mean")
	})
}
