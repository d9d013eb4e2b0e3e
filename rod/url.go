package rod

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hylin/laborcrawl"
)

// baseURL is the prefix for relative detail-view hrefs.
const baseURL = "https://judgment.judicial.gov.tw/FJUD/"

// AbsoluteURL normalizes a result-link href to an absolute URL.
// Absolute hrefs pass through unchanged.
func AbsoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + strings.TrimLeft(href, "/")
}

// pageSignature hashes the page's link URLs in order. Two pages with
// the same signature carry the same results, which is how a stuck
// pagination control is detected.
func pageSignature(tasks []laborcrawl.CaseTask) uint64 {
	h := xxhash.New()
	for _, task := range tasks {
		_, _ = h.WriteString(task.URL)
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}
