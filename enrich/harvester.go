package enrich

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

// Harvest is the result of scraping one domain's contact-style pages.
type Harvest struct {
	// Emails is the deduplicated, sorted set of addresses found.
	Emails []string
	// Sources maps each address to the first page it was seen on.
	Sources map[string]string
	// Pages counts the pages that were fetched successfully.
	Pages int
}

// Harvester fetches a fixed, bounded set of likely contact pages from a
// domain and extracts email addresses from them. Individual page failures
// are tolerated; they skip that page, never abort the harvest.
type Harvester struct {
	fetcher   sysiphe.Fetcher
	extractor *sysiphe.Extractor
	paths     []string
	limiter   *DomainLimiter
	pacer     *Pacer
}

// HarvesterOption configures a Harvester.
type HarvesterOption func(*Harvester)

// WithHarvestLimiter attaches a per-domain rate limiter applied before
// every page fetch.
func WithHarvestLimiter(l *DomainLimiter) HarvesterOption {
	return func(h *Harvester) {
		h.limiter = l
	}
}

// WithHarvestPacer attaches a politeness pacer applied between page
// fetches.
func WithHarvestPacer(p *Pacer) HarvesterOption {
	return func(h *Harvester) {
		h.pacer = p
	}
}

// NewHarvester creates a Harvester fetching the site root plus the
// configured contact-style paths.
func NewHarvester(fetcher sysiphe.Fetcher, extractor *sysiphe.Extractor, paths []string, opts ...HarvesterOption) *Harvester {
	h := &Harvester{
		fetcher:   fetcher,
		extractor: extractor,
		paths:     paths,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Harvest scrapes the domain's root page and contact-style paths.
func (h *Harvester) Harvest(ctx context.Context, domain string) *Harvest {
	result := &Harvest{Sources: make(map[string]string)}
	base := "https://" + domain

	urls := make([]string, 0, len(h.paths)+1)
	urls = append(urls, base)
	for _, p := range h.paths {
		urls = append(urls, base+p)
	}

	// Many small sites serve the same body for every path; hashing lets
	// us extract each distinct body once.
	seenBodies := make(map[uint64]struct{})

	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		body, ok := h.fetchPage(ctx, u, domain)
		if !ok {
			continue
		}
		result.Pages++

		sum := xxhash.Sum64String(body)
		if _, dup := seenBodies[sum]; dup {
			continue
		}
		seenBodies[sum] = struct{}{}

		for _, addr := range h.extractPage(body) {
			if _, seen := result.Sources[addr]; !seen {
				result.Sources[addr] = u
				result.Emails = append(result.Emails, addr)
			}
		}
	}

	sort.Strings(result.Emails)
	return result
}

func (h *Harvester) fetchPage(ctx context.Context, pageURL, domain string) (string, bool) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx, domain); err != nil {
			return "", false
		}
	}
	if h.pacer != nil {
		if err := h.pacer.Sleep(ctx); err != nil {
			return "", false
		}
	}

	resp, err := h.fetcher.Fetch(ctx, pageURL)
	if err != nil || resp.StatusCode != http.StatusOK || !resp.HTML() {
		return "", false
	}
	return resp.Body, true
}

// extractPage combines regex extraction over the raw markup with mailto
// links, which can carry addresses the body text obfuscates.
func (h *Harvester) extractPage(body string) []string {
	addrs := h.extractor.Extract(body)
	seen := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		seen[a] = struct{}{}
	}

	for _, a := range extractMailto(body) {
		a = strings.ToLower(strings.TrimSpace(a))
		if !h.extractor.Valid(a) {
			continue
		}
		if _, ok := seen[a]; !ok {
			seen[a] = struct{}{}
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// extractMailto returns the addresses of mailto links in the document.
// Parse failures yield nothing; the regex pass already covered the body.
func extractMailto(body string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var out []string
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if unescaped, err := url.QueryUnescape(addr); err == nil {
			addr = unescaped
		}
		if addr != "" {
			out = append(out, addr)
		}
	})
	return out
}
