// Package slog provides logging decorators for the pipeline's network
// capabilities.
package slog

import (
	"context"
	"log/slog"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Ensure LoggingFetcher implements sysiphe.Fetcher.
var _ sysiphe.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   sysiphe.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sysiphe.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the result.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*sysiphe.Response, error) {
	begin := time.Now()
	resp, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	f.logger.Debug("fetch",
		"url", url,
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
		"duration", time.Since(begin),
	)
	return resp, nil
}
