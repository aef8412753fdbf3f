package slog

import (
	"context"
	"log/slog"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Ensure LoggingSearcher implements sysiphe.Searcher.
var _ sysiphe.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with per-query logging.
type LoggingSearcher struct {
	next   sysiphe.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next sysiphe.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the result count.
func (s *LoggingSearcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	begin := time.Now()
	urls, err := s.next.Search(ctx, query, maxResults)
	if err != nil {
		s.logger.Error("search",
			"query", query,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("search",
		"query", query,
		"results", len(urls),
		"duration", time.Since(begin),
	)
	return urls, nil
}
