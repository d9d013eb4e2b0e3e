package bloom_test

import (
	"fmt"
	"testing"

	"github.com/hylin/laborcrawl/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_remembers_URLs(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	url := "https://judgment.judicial.gov.tw/FJUD/data.aspx?id=a"
	assert.False(t, f.Seen(url))

	f.Remember(url)
	assert.True(t, f.Seen(url))
}

func TestFilter_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := range 5000 {
		f.Remember(fmt.Sprintf("https://example.com/case/%d", i))
	}
	for i := range 5000 {
		assert.True(t, f.Seen(fmt.Sprintf("https://example.com/case/%d", i)))
	}
}
