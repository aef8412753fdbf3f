package duckduckgo_test

import (
	"context"
	"net/http"
	"testing"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/duckduckgo"
	"github.com/Holyblitz/Sysiphe-v2/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultPage = `<html><body>
<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Facme-steel.com.au%2F&rut=abc">Acme Steel</a>
</div>
<div class="result">
	<a class="result__a" href="https://www.yellowpages.com.au/acme">Directory</a>
</div>
<div class="result">
	<a class="result__a" href="javascript:void(0)">Junk</a>
</div>
<div class="result">
	<a class="result__a" href="https://acme-steel.com.au/contact">Contact</a>
</div>
</body></html>`

func fetcherReturning(resp *sysiphe.Response, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
			return resp, err
		},
	}
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("parses result links and unwraps redirects", func(t *testing.T) {
		t.Parallel()

		s := duckduckgo.NewSearcher(fetcherReturning(&sysiphe.Response{
			StatusCode: http.StatusOK,
			Body:       resultPage,
		}, nil))

		urls, err := s.Search(context.Background(), "acme steel contact email", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://acme-steel.com.au/",
			"https://www.yellowpages.com.au/acme",
			"https://acme-steel.com.au/contact",
		}, urls)
	})

	t.Run("caps results", func(t *testing.T) {
		t.Parallel()

		s := duckduckgo.NewSearcher(fetcherReturning(&sysiphe.Response{
			StatusCode: http.StatusOK,
			Body:       resultPage,
		}, nil))

		urls, err := s.Search(context.Background(), "acme", 1)
		require.NoError(t, err)
		assert.Len(t, urls, 1)
	})

	t.Run("rate limit degrades to no results", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests} {
			s := duckduckgo.NewSearcher(fetcherReturning(&sysiphe.Response{
				StatusCode: status,
				Body:       "blocked",
			}, nil))

			urls, err := s.Search(context.Background(), "acme", 5)
			require.NoError(t, err)
			assert.Empty(t, urls)
		}
	})

	t.Run("interstitial body degrades to no results", func(t *testing.T) {
		t.Parallel()

		s := duckduckgo.NewSearcher(fetcherReturning(&sysiphe.Response{
			StatusCode: http.StatusOK,
			Body:       "<html>Our systems have detected unusual traffic</html>",
		}, nil))

		urls, err := s.Search(context.Background(), "acme", 5)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("transport failure surfaces as error", func(t *testing.T) {
		t.Parallel()

		s := duckduckgo.NewSearcher(fetcherReturning(nil, assert.AnError))

		_, err := s.Search(context.Background(), "acme", 5)
		require.Error(t, err)
	})
}
