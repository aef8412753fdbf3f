package mock

import (
	"context"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

var _ sysiphe.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of sysiphe.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, target *sysiphe.Target, outcome *sysiphe.Outcome) (*sysiphe.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, target *sysiphe.Target, outcome *sysiphe.Outcome) (*sysiphe.Classification, error) {
	return c.ClassifyFn(ctx, target, outcome)
}
