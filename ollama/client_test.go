package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Client implements laborcrawl.ExtractionClient.
var _ laborcrawl.ExtractionClient = (*ollama.Client)(nil)

func TestClient_Extract_sends_policy_and_text(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{
				"role":    "assistant",
				"content": `{"job_title":"工程師","monthly_salary":50000,"currency":"TWD"}`,
			},
		})
	}))
	defer srv.Close()

	client := ollama.NewClient(ollama.WithBaseURL(srv.URL), ollama.WithModel("test-model"))

	raw, err := client.Extract(context.Background(), "判決書內容")

	require.NoError(t, err)
	assert.Contains(t, raw, "工程師")

	assert.Equal(t, "test-model", got["model"])
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, false, got["stream"])

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	system := msgs[0].(map[string]any)
	user := msgs[1].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, laborcrawl.ExtractionPolicy, system["content"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "判決書內容", user["content"])

	opts, ok := got["options"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, opts, "num_ctx")
	assert.Contains(t, opts, "num_predict")
	assert.Contains(t, opts, "temperature")
}

func TestClient_Extract_HTTP_error_is_unavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := ollama.NewClient(ollama.WithBaseURL(srv.URL))

	_, err := client.Extract(context.Background(), "text")

	assert.Equal(t, laborcrawl.EUNAVAILABLE, laborcrawl.ErrorCode(err))
}

func TestClient_Extract_timeout_is_unavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := ollama.NewClient(ollama.WithBaseURL(srv.URL), ollama.WithTimeout(20*time.Millisecond))

	_, err := client.Extract(context.Background(), "text")

	assert.Equal(t, laborcrawl.EUNAVAILABLE, laborcrawl.ErrorCode(err))
}

func TestClient_Extract_empty_content_is_unprocessable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"message": map[string]any{"role": "assistant", "content": ""}})
	}))
	defer srv.Close()

	client := ollama.NewClient(ollama.WithBaseURL(srv.URL))

	_, err := client.Extract(context.Background(), "text")

	assert.Equal(t, laborcrawl.EUNPROCESSABLE, laborcrawl.ErrorCode(err))
}

func TestClient_Extract_rejects_empty_input_without_calling_server(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := ollama.NewClient(ollama.WithBaseURL(srv.URL))

	_, err := client.Extract(context.Background(), "")

	assert.Equal(t, laborcrawl.EINVALID, laborcrawl.ErrorCode(err))
	assert.False(t, called)
}
