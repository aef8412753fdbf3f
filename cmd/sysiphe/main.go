package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/bloom"
	"github.com/Holyblitz/Sysiphe-v2/dns"
	"github.com/Holyblitz/Sysiphe-v2/duckduckgo"
	"github.com/Holyblitz/Sysiphe-v2/enrich"
	"github.com/Holyblitz/Sysiphe-v2/gemini"
	syshttp "github.com/Holyblitz/Sysiphe-v2/http"
	"github.com/Holyblitz/Sysiphe-v2/serpapi"
	sysslog "github.com/Holyblitz/Sysiphe-v2/slog"
	"github.com/Holyblitz/Sysiphe-v2/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// TargetService for end-to-end testing.
	TargetService sysiphe.TargetService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := sysiphe.DefaultConfig()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sysiphe"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sysiphe --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The guess command needs no database or network.
	if cmd != "guess" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SYSIPHE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.TargetService = sqlite.NewTargetService(m.DB)
		deps.DB = m.DB
		deps.Targets = m.TargetService
	}

	if cmd == "enrich" {
		if cli.Enrich.SleepMin > 0 {
			cfg.SleepMin = cli.Enrich.SleepMin
		}
		if cli.Enrich.SleepMax > 0 {
			cfg.SleepMax = cli.Enrich.SleepMax
		}
		if cli.Enrich.Timeout > 0 {
			cfg.FetchTimeout = cli.Enrich.Timeout
		}
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		enricher, err := buildEnricher(cfg, m.TargetService, logger, cli.Enrich)
		if err != nil {
			return err
		}
		deps.Enricher = enricher
	}

	if cmd == "classify" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Classifier = gemini.NewClassifier(client)
	}

	return kongCtx.Run(deps)
}

// buildEnricher wires the full pipeline: paced HTTP fetching, DNS
// verification, page harvesting and the search fallback.
func buildEnricher(cfg sysiphe.Config, targets sysiphe.TargetService, logger *slog.Logger, opts EnrichCmd) (*enrich.Enricher, error) {
	var fetcher sysiphe.Fetcher = syshttp.NewFetcher(
		syshttp.WithTimeout(cfg.FetchTimeout),
		syshttp.WithUserAgent(cfg.UserAgent),
	)
	fetcher = sysslog.NewLoggingFetcher(fetcher, logger)

	resolver := dns.NewResolver()
	limiter := enrich.NewDomainLimiter(1.0)
	pacer := enrich.NewPacer(cfg.SleepMin, cfg.SleepMax)

	var searcher sysiphe.Searcher
	if opts.Provider == "serpapi" {
		s, err := serpapi.NewSearcher(os.Getenv("SERPAPI_API_KEY"))
		if err != nil {
			return nil, fmt.Errorf("serpapi provider: %w (set SERPAPI_API_KEY)", err)
		}
		searcher = s
	} else {
		searcher = duckduckgo.NewSearcher(fetcher)
	}
	searcher = sysslog.NewLoggingSearcher(searcher, logger)

	extractor := sysiphe.NewExtractor(cfg.Placeholders)
	scorer := sysiphe.NewScorer(cfg)
	verifier := enrich.NewVerifier(resolver, fetcher, enrich.WithDomainLimiter(limiter))

	// One filter per run: a page fetched for one company is never fetched
	// again for another.
	seen := bloom.NewFilter(100_000, 0.01)

	return &enrich.Enricher{
		Targets:    targets,
		Normalizer: sysiphe.NewNormalizer(cfg.LegalTerms),
		Generator:  sysiphe.NewGenerator(cfg),
		Verifier:   verifier,
		Harvester: enrich.NewHarvester(fetcher, extractor, cfg.ContactPaths,
			enrich.WithHarvestLimiter(limiter),
			enrich.WithHarvestPacer(pacer)),
		Search: enrich.NewSearchResolver(searcher, fetcher, extractor, scorer, cfg,
			enrich.WithSearchVerifier(verifier),
			enrich.WithSearchLimiter(limiter),
			enrich.WithSearchPacer(pacer),
			enrich.WithSeenFilter(seen)),
		Scorer:             scorer,
		Pacer:              pacer,
		Logger:             logger,
		Concurrency:        opts.Concurrency,
		HarvestUnreachable: opts.HarvestUnreachable,
	}, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SYSIPHE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sysiphe.db"
	}
	dir := filepath.Join(home, ".sysiphe")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sysiphe.db")
}
