package mock

import (
	"context"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

var _ sysiphe.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of sysiphe.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, maxResults int) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	return s.SearchFn(ctx, query, maxResults)
}
