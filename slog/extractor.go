// Package slog provides logging decorators for laborcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hylin/laborcrawl"
)

// Ensure LoggingClient implements laborcrawl.ExtractionClient.
var _ laborcrawl.ExtractionClient = (*LoggingClient)(nil)

// LoggingClient wraps an ExtractionClient with per-call logging.
type LoggingClient struct {
	next   laborcrawl.ExtractionClient
	logger *slog.Logger
}

// NewLoggingClient creates a new LoggingClient.
func NewLoggingClient(next laborcrawl.ExtractionClient, logger *slog.Logger) *LoggingClient {
	return &LoggingClient{next: next, logger: logger}
}

// Extract delegates to the wrapped client and logs the operation.
func (c *LoggingClient) Extract(ctx context.Context, text string) (raw string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("extract",
			"input_len", len(text),
			"output_len", len(raw),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Extract(ctx, text)
}
