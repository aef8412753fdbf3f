package main

import (
	"context"
	"io"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/Holyblitz/Sysiphe-v2/enrich"
	"github.com/Holyblitz/Sysiphe-v2/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Config     sysiphe.Config
	Targets    sysiphe.TargetService
	Enricher   *enrich.Enricher
	Classifier sysiphe.Classifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Import   ImportCmd   `cmd:"" help:"Import company records from a CSV file"`
	Enrich   EnrichCmd   `cmd:"" help:"Enrich pending companies with contact emails"`
	Export   ExportCmd   `cmd:"" help:"Export discovered contacts as CSV"`
	Status   StatusCmd   `cmd:"" help:"Show target counts per status"`
	Guess    GuessCmd    `cmd:"" help:"Preview domain candidates for a company name"`
	Classify ClassifyCmd `cmd:"" help:"Judge found contacts for outreach relevance"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" help:"CSV file with company records"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	Limit              int           `short:"n" default:"50" help:"Maximum targets to process"`
	Concurrency        int           `short:"c" default:"1" help:"Concurrent worker limit"`
	Provider           string        `default:"ddg" enum:"ddg,serpapi" help:"Search provider (serpapi needs SERPAPI_API_KEY)"`
	SleepMin           time.Duration `help:"Politeness delay lower bound"`
	SleepMax           time.Duration `help:"Politeness delay upper bound"`
	Timeout            time.Duration `help:"Per-request fetch timeout"`
	HarvestUnreachable bool          `help:"Scrape verified domains even when the site probe fails"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	File   string `arg:"" optional:"" help:"Output CSV file (default stdout)"`
	Status string `short:"s" help:"Only export outcomes with this status"`
	Limit  int    `short:"n" help:"Maximum rows to export"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// GuessCmd is the "guess" subcommand.
type GuessCmd struct {
	Name string `arg:"" help:"Company name"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum found contacts to classify"`
}
