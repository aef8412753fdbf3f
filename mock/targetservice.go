package mock

import (
	"context"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
)

var _ sysiphe.TargetService = (*TargetService)(nil)

// TargetService is a mock implementation of sysiphe.TargetService.
type TargetService struct {
	CreateTargetFn   func(ctx context.Context, target *sysiphe.Target) error
	FindTargetByIDFn func(ctx context.Context, id string) (*sysiphe.Target, error)
	FetchPendingFn   func(ctx context.Context, limit int) ([]*sysiphe.Target, error)
	PersistOutcomeFn func(ctx context.Context, outcome *sysiphe.Outcome) error
	FindOutcomesFn   func(ctx context.Context, filter sysiphe.OutcomeFilter) ([]*sysiphe.Outcome, error)
	CountByStatusFn  func(ctx context.Context) (map[sysiphe.Status]int, error)
}

func (s *TargetService) CreateTarget(ctx context.Context, target *sysiphe.Target) error {
	return s.CreateTargetFn(ctx, target)
}

func (s *TargetService) FindTargetByID(ctx context.Context, id string) (*sysiphe.Target, error) {
	return s.FindTargetByIDFn(ctx, id)
}

func (s *TargetService) FetchPending(ctx context.Context, limit int) ([]*sysiphe.Target, error) {
	return s.FetchPendingFn(ctx, limit)
}

func (s *TargetService) PersistOutcome(ctx context.Context, outcome *sysiphe.Outcome) error {
	return s.PersistOutcomeFn(ctx, outcome)
}

func (s *TargetService) FindOutcomes(ctx context.Context, filter sysiphe.OutcomeFilter) ([]*sysiphe.Outcome, error) {
	return s.FindOutcomesFn(ctx, filter)
}

func (s *TargetService) CountByStatus(ctx context.Context) (map[sysiphe.Status]int, error) {
	return s.CountByStatusFn(ctx)
}
