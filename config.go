package sysiphe

import "time"

// ScoreWeights holds the tunable components of the email confidence score.
// The defaults are heuristics, not a calibrated model; treat them as a
// starting point.
type ScoreWeights struct {
	Base           int // starting score for any candidate
	MXBonus        int // chosen domain has mail routing
	ReachableBonus int // chosen domain's site responded
	FreePenalty    int // subtracted for public free-mail providers
	DomainMatch    int // email domain equals the expected domain
	SubdomainMatch int // email domain is a subdomain of the expected domain
	DomainMismatch int // subtracted when an expected domain is known but differs
	LocalpartBase  int // bonus for the highest-ranked preferred localpart
	LocalpartStep  int // bonus decay per localpart rank
	FirstToken     int // email domain core contains the first name token
	SecondToken    int // email domain core contains the second name token
}

// Config carries every list and threshold the pipeline components need.
// It is an immutable value: construct once, inject everywhere, never mutate.
type Config struct {
	// Name normalization. Terms are matched as whole words, case-insensitively.
	LegalTerms []string

	// Domain candidate generation.
	Suffixes      []string // ordered, most specific first
	GenericTokens []string // single-token cores rejected outright
	CoreMinLen    int      // inclusive lower bound for any core
	JoinedCoreMax int      // upper bound for the concatenated core
	DashedCoreMax int      // upper bound for the hyphenated core
	BrandCoreMax  int      // upper bound for the two-token core

	// Harvesting.
	ContactPaths []string // fetched in addition to the site root
	Placeholders []string // domain fragments that mark template addresses

	// Scoring.
	FreeProviders     []string
	LocalpartPriority []string
	Weights           ScoreWeights

	// Search fallback.
	AggregatorHosts []string // never treated as a company's own domain
	MaxSearchPages  int      // result pages fetched per company
	HighConfidence  int      // short-circuit threshold during search harvest

	// Network behavior.
	UserAgent    string
	FetchTimeout time.Duration
	SleepMin     time.Duration // politeness delay lower bound
	SleepMax     time.Duration // politeness delay upper bound

	// Whether to scrape pages of a verified domain whose site did not
	// respond to the reachability probe. Off by default; such domains
	// still go through search-based harvesting.
	HarvestUnreachable bool
}

// DefaultConfig returns the configuration tuned for Australian company
// records, the pipeline's original target population.
func DefaultConfig() Config {
	return Config{
		LegalTerms: []string{
			"PTY", "PTY LTD", "LIMITED", "LTD",
			"PROPRIETARY", "PROPRIETARY LIMITED",
			"GROUP", "HOLDING", "HOLDINGS", "AUSTRALIA",
		},
		Suffixes: []string{".com.au", ".net.au", ".org.au", ".com"},
		GenericTokens: []string{
			"insurance", "steel", "hardware", "investments",
			"finance", "solutions", "services", "group",
		},
		CoreMinLen:    4,
		JoinedCoreMax: 24,
		DashedCoreMax: 28,
		BrandCoreMax:  18,
		ContactPaths: []string{
			"/contact", "/contact-us", "/about", "/about-us",
			"/support", "/privacy", "/help", "/enquiries",
		},
		Placeholders: []string{
			"example.com", "yourcompany.com", "email.com",
			"test.com", "domain.com",
		},
		FreeProviders: []string{
			"gmail.com", "googlemail.com", "outlook.com", "hotmail.com",
			"live.com", "yahoo.com", "yahoo.com.au", "icloud.com",
			"aol.com", "proton.me", "protonmail.com",
		},
		LocalpartPriority: []string{
			"contact", "hello", "info", "support", "sales", "admin",
			"enquiries", "enquiry", "privacy", "office", "team",
		},
		Weights: ScoreWeights{
			Base:           50,
			MXBonus:        40,
			ReachableBonus: 30,
			FreePenalty:    35,
			DomainMatch:    35,
			SubdomainMatch: 20,
			DomainMismatch: 10,
			LocalpartBase:  25,
			LocalpartStep:  3,
			FirstToken:     20,
			SecondToken:    10,
		},
		AggregatorHosts: []string{
			"google.", "duckduckgo.", "facebook.", "linkedin.",
			"instagram.", "youtube.", "yelp.", "yellowpages.",
			"hotfrog.", "truelocal.", "aussieweb.", "dnb.",
			"zoominfo.", "clutch.co",
		},
		MaxSearchPages: 3,
		HighConfidence: 85,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		FetchTimeout: 15 * time.Second,
		SleepMin:     1 * time.Second,
		SleepMax:     2500 * time.Millisecond,
	}
}
