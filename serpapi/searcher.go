// Package serpapi provides a search capability backed by the SerpAPI
// Google results API. Requires an API key; construction fails without one
// so the misconfiguration surfaces before any batch starts.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

const defaultBaseURL = "https://serpapi.com"

// Ensure Searcher implements sysiphe.Searcher at compile time.
var _ sysiphe.Searcher = (*Searcher)(nil)

// Searcher queries SerpAPI's JSON endpoint.
type Searcher struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(base string) Option {
	return func(s *Searcher) {
		s.baseURL = base
	}
}

// WithClient replaces the underlying HTTP client.
func WithClient(client *http.Client) Option {
	return func(s *Searcher) {
		s.client = client
	}
}

// NewSearcher creates a Searcher. Returns EINVALID if apiKey is empty;
// a missing credential must abort the run before any company is processed.
func NewSearcher(apiKey string, opts ...Option) (*Searcher, error) {
	if apiKey == "" {
		return nil, sysiphe.Errorf(sysiphe.EINVALID, "serpapi: API key required (set SERPAPI_API_KEY)")
	}
	s := &Searcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type searchResponse struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
}

// Search returns up to maxResults organic result URLs for the query.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{
		"q":       {query},
		"engine":  {"google"},
		"api_key": {s.apiKey},
	}
	if maxResults > 0 {
		params.Set("num", strconv.Itoa(maxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, sysiphe.Errorf(sysiphe.EUNAVAILABLE, "serpapi returned HTTP %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, sysiphe.Errorf(sysiphe.EINVALID, "serpapi: unparseable response: %v", err)
	}

	var urls []string
	for _, item := range payload.OrganicResults {
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if maxResults > 0 && len(urls) >= maxResults {
			break
		}
	}
	return urls, nil
}
