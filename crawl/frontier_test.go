package crawl_test

import (
	"testing"

	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	task := laborcrawl.CaseTask{URL: "https://example.com/case/1", Title: "case 1"}

	assert.True(t, f.Push(task), "first push should succeed")
	assert.False(t, f.Push(task), "duplicate URL should be rejected")
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Pop_preserves_discovery_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	f.Push(laborcrawl.CaseTask{URL: "https://example.com/a"})
	f.Push(laborcrawl.CaseTask{URL: "https://example.com/b"})
	f.Push(laborcrawl.CaseTask{URL: "https://example.com/c"})

	for _, want := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"} {
		task, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, task.URL)
	}

	_, ok := f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_duplicate_across_pages_yields_single_task(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	// Same link appearing on two different result pages.
	f.Push(laborcrawl.CaseTask{URL: "https://example.com/case/9", Title: "page 1 copy"})
	f.Push(laborcrawl.CaseTask{URL: "https://example.com/case/9", Title: "page 2 copy"})

	assert.Equal(t, 1, f.Len())
}
