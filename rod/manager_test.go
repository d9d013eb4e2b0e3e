//go:build integration

package rod_test

import (
	"testing"

	"github.com/hylin/laborcrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterThreshold(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithRecycleAfter(3))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.RecordView()
	manager.RecordView()
	manager.RecordView()

	// Next Browser() call should recycle and return a different instance.
	secondBrowser := manager.Browser()
	require.NotNil(t, secondBrowser)

	assert.NotSame(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_DoesNotRecycleBeforeThreshold(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithRecycleAfter(5))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.RecordView()
	manager.RecordView()

	sameBrowser := manager.Browser()
	assert.Same(t, firstBrowser, sameBrowser)
}
