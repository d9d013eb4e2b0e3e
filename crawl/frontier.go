package crawl

import (
	"sync"

	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/bloom"
)

// Frontier configuration.
const (
	// frontierExpectedURLs sizes the Bloom filter for in-session dedup.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is acceptable because a false positive
	// only skips one case within the session; durable dedup is exact.
	frontierFalsePositiveRate = 0.01
)

// Frontier is the harvest-then-visit queue between the navigator and
// the per-case pipeline. Tasks are consumed in page order; duplicate
// URLs pushed from later pages are dropped.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []laborcrawl.CaseTask
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
	}
}

// Push adds a task to the frontier.
// Returns false if the URL has already been pushed this session.
func (f *Frontier) Push(task laborcrawl.CaseTask) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Seen(task.URL) {
		return false
	}
	f.seen.Remember(task.URL)
	f.queue = append(f.queue, task)
	return true
}

// Pop returns the next task in discovery order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (laborcrawl.CaseTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return laborcrawl.CaseTask{}, false
	}
	task := f.queue[0]
	f.queue = f.queue[1:]
	return task, true
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
