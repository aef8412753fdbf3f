package enrich_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/enrich"
	"github.com/Holyblitz/Sysiphe-v2/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarvester(fetcher sysiphe.Fetcher, opts ...enrich.HarvesterOption) *enrich.Harvester {
	cfg := sysiphe.DefaultConfig()
	return enrich.NewHarvester(fetcher, sysiphe.NewExtractor(cfg.Placeholders), cfg.ContactPaths, opts...)
}

func TestHarvester_Harvest(t *testing.T) {
	t.Parallel()

	t.Run("collects emails across pages with sources", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				switch {
				case url == "https://acme-steel.com.au":
					return &sysiphe.Response{StatusCode: http.StatusOK,
						Body: "<html>welcome to acme steel</html>"}, nil
				case strings.HasSuffix(url, "/contact"):
					return &sysiphe.Response{StatusCode: http.StatusOK,
						Body: "<p>info@acme-steel.com.au or sales@acme-steel.com.au</p>"}, nil
				default:
					return &sysiphe.Response{StatusCode: http.StatusNotFound}, nil
				}
			},
		}

		h := newHarvester(fetcher)
		got := h.Harvest(context.Background(), "acme-steel.com.au")

		assert.Equal(t, []string{"info@acme-steel.com.au", "sales@acme-steel.com.au"}, got.Emails)
		assert.Equal(t, "https://acme-steel.com.au/contact", got.Sources["info@acme-steel.com.au"])
		assert.Equal(t, 2, got.Pages)
	})

	t.Run("tolerates individual fetch failures", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				if strings.HasSuffix(url, "/about") {
					return &sysiphe.Response{StatusCode: http.StatusOK,
						Body: "write to hello@acme.com.au"}, nil
				}
				return nil, errors.New("connection timed out")
			},
		}

		h := newHarvester(fetcher)
		got := h.Harvest(context.Background(), "acme.com.au")

		assert.Equal(t, []string{"hello@acme.com.au"}, got.Emails)
	})

	t.Run("never returns placeholder addresses", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				return &sysiphe.Response{StatusCode: http.StatusOK,
					Body: "template: you@example.com admin@yourcompany.com x@test.com real@acme.com.au"}, nil
			},
		}

		h := newHarvester(fetcher)
		got := h.Harvest(context.Background(), "acme.com.au")

		assert.Equal(t, []string{"real@acme.com.au"}, got.Emails)
	})

	t.Run("extracts mailto links", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				if url != "https://acme.com.au" {
					return &sysiphe.Response{StatusCode: http.StatusNotFound}, nil
				}
				return &sysiphe.Response{StatusCode: http.StatusOK,
					Body: `<a href="mailto:Enquiries@Acme.com.au?subject=Hi">Get in touch</a>`}, nil
			},
		}

		h := newHarvester(fetcher)
		got := h.Harvest(context.Background(), "acme.com.au")

		assert.Equal(t, []string{"enquiries@acme.com.au"}, got.Emails)
	})

	t.Run("skips non-html pages", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				return &sysiphe.Response{StatusCode: http.StatusOK,
					ContentType: "application/pdf",
					Body:        "embedded@acme.com.au"}, nil
			},
		}

		h := newHarvester(fetcher)
		got := h.Harvest(context.Background(), "acme.com.au")

		assert.Empty(t, got.Emails)
		assert.Zero(t, got.Pages)
	})

	t.Run("identical bodies extracted once", func(t *testing.T) {
		t.Parallel()

		// A catch-all site serving one page for every path should not
		// change the result set.
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				return &sysiphe.Response{StatusCode: http.StatusOK,
					Body: "<html>contact info@acme.com.au</html>"}, nil
			},
		}

		h := newHarvester(fetcher)
		got := h.Harvest(context.Background(), "acme.com.au")

		assert.Equal(t, []string{"info@acme.com.au"}, got.Emails)
		assert.Equal(t, "https://acme.com.au", got.Sources["info@acme.com.au"],
			"first page seen wins as source")
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*sysiphe.Response, error) {
				return &sysiphe.Response{StatusCode: http.StatusOK,
					Body: "info@acme.com.au"}, nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		h := newHarvester(fetcher)
		got := h.Harvest(ctx, "acme.com.au")

		require.NotNil(t, got)
		assert.Zero(t, got.Pages)
		assert.Empty(t, got.Emails)
	})
}
