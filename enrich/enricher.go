package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"golang.org/x/sync/errgroup"
)

// Enricher drives company records through the discovery pipeline:
// normalize, generate or search, verify, harvest, score, persist.
type Enricher struct {
	Targets    sysiphe.TargetService
	Normalizer *sysiphe.Normalizer
	Generator  *sysiphe.Generator
	Verifier   *Verifier
	Harvester  *Harvester
	Search     *SearchResolver
	Scorer     *sysiphe.Scorer
	Pacer      *Pacer
	Logger     *slog.Logger

	// Concurrency bounds the worker pool; values below 2 run the batch
	// strictly sequentially, the default posture for polite scraping.
	Concurrency int

	// HarvestUnreachable also scrapes pages of verified domains whose
	// site did not answer the probe. Off by default; such domains still
	// go through the search path.
	HarvestUnreachable bool
}

// BatchResult summarizes one enrichment run.
type BatchResult struct {
	Processed int
	Counts    map[sysiphe.Status]int
	Failed    int // persistence failures, not enrichment outcomes
}

// Run pulls up to limit pending targets and enriches each one. Individual
// failures never abort the batch; the only errors returned are from
// fetching the batch itself or a canceled context.
func (e *Enricher) Run(ctx context.Context, limit int) (*BatchResult, error) {
	targets, err := e.Targets.FetchPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending targets: %w", err)
	}

	result := &BatchResult{Counts: make(map[sysiphe.Status]int)}
	var mu sync.Mutex

	record := func(outcome *sysiphe.Outcome, persistErr error) {
		mu.Lock()
		defer mu.Unlock()
		result.Processed++
		if persistErr != nil {
			result.Failed++
			return
		}
		result.Counts[outcome.Status]++
	}

	concurrency := e.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, t := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Pace before touching the network, per worker.
			if e.Pacer != nil {
				if err := e.Pacer.Sleep(gctx); err != nil {
					return err
				}
			}

			outcome := e.EnrichOne(gctx, t)
			err := e.Targets.PersistOutcome(gctx, outcome)
			if err != nil {
				e.log().Error("persist outcome",
					"target", t.ID, "status", outcome.Status, "err", err)
			} else {
				e.log().Info("enriched",
					"target", t.ID, "name", t.Name,
					"status", outcome.Status, "email", outcome.Email,
					"confidence", outcome.Confidence)
			}
			record(outcome, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// EnrichOne runs the full state machine for a single target and returns a
// terminal outcome. It never returns an error: external failures during
// search or fetch become a search_error outcome with the error's category
// as evidence.
func (e *Enricher) EnrichOne(ctx context.Context, t *sysiphe.Target) *sysiphe.Outcome {
	outcome := &sysiphe.Outcome{
		TargetID:  t.ID,
		CheckedAt: time.Now().UTC(),
	}
	var evidence []string
	note := func(format string, args ...any) {
		evidence = append(evidence, fmt.Sprintf(format, args...))
	}
	defer func() {
		outcome.Evidence = strings.Join(evidence, "\n")
	}()

	tokens := e.Normalizer.Tokens(t.Name)
	note("[normalize] tokens=%s", strings.Join(tokens, " "))

	candidates := e.Generator.Candidates(tokens)
	if t.KnownDomain != "" {
		// A domain from the record source outranks every guess.
		known := sysiphe.NormalizeDomain(t.KnownDomain)
		candidates = append([]sysiphe.DomainCandidate{{Core: known}}, candidates...)
		note("[generate] known domain %s + %d candidates", known, len(candidates)-1)
	} else {
		note("[generate] %d candidates", len(candidates))
	}

	verification := e.Verifier.FirstVerified(ctx, candidates)
	if verification == nil {
		note("[verify] no candidate has mail routing")
		return e.resolveBySearch(ctx, t, tokens, outcome, note)
	}
	note("[verify] %s mx=%d %s", verification.Domain,
		len(verification.MXHosts), verification.Reachability)

	outcome.Domain = verification.Domain

	if verification.Reachability != sysiphe.Reachable && !e.HarvestUnreachable {
		// Verified but the site does not answer: no pages to scrape,
		// but the domain is still worth a search pass.
		note("[harvest] skipped, site %s", verification.Reachability)
		return e.searchVerified(ctx, t, tokens, verification, outcome, note)
	}

	harvest := e.Harvester.Harvest(ctx, verification.Domain)
	note("[harvest] %d emails from %d pages", len(harvest.Emails), harvest.Pages)
	if len(harvest.Emails) == 0 {
		outcome.Status = sysiphe.StatusNoEmail
		return outcome
	}

	best := e.Scorer.Best(harvest.Emails, "", sysiphe.ScoreSignals{
		ExpectedDomain: verification.Domain,
		MXPresent:      true,
		SiteReachable:  verification.Reachability == sysiphe.Reachable,
		Tokens:         tokens,
	})
	best.SourceURL = harvest.Sources[best.Address]

	outcome.Status = sysiphe.StatusFound
	outcome.Email = best.Address
	outcome.Confidence = best.Confidence
	outcome.SourceURL = best.SourceURL
	note("[score] %s %d %s", best.Address, best.Confidence, best.Reason())
	return outcome
}

// resolveBySearch handles targets with no verified candidate domain.
func (e *Enricher) resolveBySearch(ctx context.Context, t *sysiphe.Target, tokens []string, outcome *sysiphe.Outcome, note func(string, ...any)) *sysiphe.Outcome {
	if e.Search == nil {
		outcome.Status = sysiphe.StatusNoDomain
		return outcome
	}

	res, err := e.Search.Resolve(ctx, t, tokens)
	if err != nil {
		outcome.Status = sysiphe.StatusSearchError
		note("[search] error %s", errorCategory(err))
		return outcome
	}
	outcome.Query = res.Query

	if res.Best == nil {
		if res.Domain == "" {
			outcome.Status = sysiphe.StatusNoDomain
			note("[search] no plausible domain in results")
		} else {
			outcome.Status = sysiphe.StatusNoEmail
			outcome.Domain = res.Domain
			note("[search] domain %s but no email on result pages", res.Domain)
		}
		return outcome
	}

	outcome.Status = sysiphe.StatusFound
	outcome.Domain = res.Domain
	outcome.Email = res.Best.Address
	outcome.Confidence = res.Best.Confidence
	outcome.SourceURL = res.Best.SourceURL
	note("[search] %s %d %s", res.Best.Address, res.Best.Confidence, res.Best.Reason())
	return outcome
}

// searchVerified harvests via search for a verified domain whose site did
// not respond. The domain is kept on the outcome either way.
func (e *Enricher) searchVerified(ctx context.Context, t *sysiphe.Target, tokens []string, verification *sysiphe.Verification, outcome *sysiphe.Outcome, note func(string, ...any)) *sysiphe.Outcome {
	if e.Search == nil {
		outcome.Status = sysiphe.StatusNoEmail
		return outcome
	}

	res, err := e.Search.ResolveForDomain(ctx, t, tokens, verification.Domain)
	if err != nil {
		outcome.Status = sysiphe.StatusSearchError
		note("[search] error %s", errorCategory(err))
		return outcome
	}
	outcome.Query = res.Query

	if res.Best == nil {
		outcome.Status = sysiphe.StatusNoEmail
		note("[search] no email for verified domain %s", verification.Domain)
		return outcome
	}

	outcome.Status = sysiphe.StatusFound
	outcome.Email = res.Best.Address
	outcome.Confidence = res.Best.Confidence
	outcome.SourceURL = res.Best.SourceURL
	note("[search] %s %d %s", res.Best.Address, res.Best.Confidence, res.Best.Reason())
	return outcome
}

func (e *Enricher) log() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// errorCategory renders an error as a short audit tag: the application
// error code when available, otherwise the dynamic type.
func errorCategory(err error) string {
	if code := sysiphe.ErrorCode(err); code != sysiphe.EINTERNAL && code != "" {
		return code
	}
	return fmt.Sprintf("%T", err)
}
