// Package ollama provides the local chat-completion extraction backend.
// It speaks the /api/chat protocol of a locally hosted model server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hylin/laborcrawl"
)

// DefaultBaseURL is the conventional local server address.
const DefaultBaseURL = "http://localhost:11434"

// DefaultModel is the chat model used unless overridden.
const DefaultModel = "qwen2.5:7b"

// DefaultTimeout bounds a single extraction call. Local generation on
// CPU is slow for judgment-length prompts.
const DefaultTimeout = 120 * time.Second

// Options are the model runtime options sent with every request.
type Options struct {
	NumCtx      int     `json:"num_ctx"`
	NumBatch    int     `json:"num_batch"`
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
	NumThread   int     `json:"num_thread"`
}

// DefaultOptions returns runtime options sized for salary extraction:
// enough context for a truncated judgment, a small output budget, and a
// near-deterministic temperature.
func DefaultOptions() Options {
	return Options{
		NumCtx:      8192,
		NumBatch:    512,
		NumPredict:  256,
		Temperature: 0.1,
		NumThread:   8,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Format   string        `json:"format"`
	Stream   bool          `json:"stream"`
	Options  Options       `json:"options"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Ensure Client implements laborcrawl.ExtractionClient at compile time.
var _ laborcrawl.ExtractionClient = (*Client)(nil)

// Client implements laborcrawl.ExtractionClient against a local chat
// server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	options    Options
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the server address.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithOptions overrides the model runtime options.
func WithOptions(o Options) Option {
	return func(c *Client) {
		c.options = o
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		options: DefaultOptions(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{Timeout: c.timeout}
	return c
}

// Extract sends the judgment text to the local chat endpoint with the
// fixed extraction policy as the system message and returns the raw
// message content.
func (c *Client) Extract(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", laborcrawl.Errorf(laborcrawl.EINVALID, "empty extraction input")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: laborcrawl.ExtractionPolicy},
			{Role: "user", Content: text},
		},
		Format:  "json",
		Stream:  false,
		Options: c.options,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", laborcrawl.Errorf(laborcrawl.EUNAVAILABLE, "local chat backend unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", laborcrawl.Errorf(laborcrawl.EUNAVAILABLE, "local chat backend: HTTP %d: %s", resp.StatusCode, msg)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if out.Message.Content == "" {
		return "", laborcrawl.Errorf(laborcrawl.EUNPROCESSABLE, "local chat backend returned empty content")
	}

	return out.Message.Content, nil
}
