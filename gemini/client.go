// Package gemini provides the hosted extraction backend using Google
// Gemini.
package gemini

import (
	"context"
	"time"

	"github.com/hylin/laborcrawl"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used unless overridden.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single extraction call.
const DefaultTimeout = 60 * time.Second

// Ensure Client implements laborcrawl.ExtractionClient at compile time.
var _ laborcrawl.ExtractionClient = (*Client)(nil)

// Client implements laborcrawl.ExtractionClient using Google Gemini.
// The genai client is constructed once at session start and injected,
// so tests can substitute a stub and no hidden global state exists.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the generation model.
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

// NewClient creates a new Client around an existing genai client.
func NewClient(client *genai.Client, opts ...Option) *Client {
	c := &Client{
		client:  client,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract sends the judgment text to Gemini and returns the raw model
// output. An empty candidate list is a content-safety rejection, not a
// transport error.
func (c *Client) Extract(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", laborcrawl.Errorf(laborcrawl.EINVALID, "empty extraction input")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", laborcrawl.Errorf(laborcrawl.EUNAVAILABLE, "gemini call failed: %v", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", laborcrawl.Errorf(laborcrawl.EUNPROCESSABLE, "gemini returned no candidates (content rejected)")
	}

	out := result.Text()
	if out == "" {
		return "", laborcrawl.Errorf(laborcrawl.EUNPROCESSABLE, "gemini returned empty content")
	}
	return out, nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls:
// the fixed policy as system instruction, near-deterministic
// temperature, and JSON output.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: laborcrawl.ExtractionPolicy}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
