package mock

import (
	"context"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

var _ sysiphe.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sysiphe.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sysiphe.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sysiphe.Response, error) {
	return f.FetchFn(ctx, url)
}
