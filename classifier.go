package sysiphe

import "context"

// Classification is a relevance verdict for an enriched target.
type Classification struct {
	Relevant  bool   `json:"relevant"`
	Rationale string `json:"rationale"`
}

// Classifier judges whether an enriched target is a relevant outreach
// candidate. Implementations typically wrap an LLM; the pipeline treats
// the verdict as advisory and records the rationale alongside the outcome.
type Classifier interface {
	Classify(ctx context.Context, target *Target, outcome *Outcome) (*Classification, error)
}
