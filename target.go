package sysiphe

import (
	"context"
	"time"
)

// Status represents the lifecycle state of a target record.
type Status string

// Target statuses. StatusPending marks records awaiting enrichment; the
// other four are the terminal outcomes of one pipeline run.
const (
	StatusPending     Status = "pending"
	StatusFound       Status = "found"
	StatusNoDomain    Status = "no_domain_found"
	StatusNoEmail     Status = "no_email_found"
	StatusSearchError Status = "search_error"
)

// Terminal reports whether the status is a terminal enrichment outcome.
func (s Status) Terminal() bool {
	switch s {
	case StatusFound, StatusNoDomain, StatusNoEmail, StatusSearchError:
		return true
	}
	return false
}

// Target represents a company record to be enriched with a contact email.
type Target struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	KnownDomain string    `json:"knownDomain"` // optional, from the record source
	State       string    `json:"state"`       // optional jurisdiction hint
	Postcode    string    `json:"postcode"`    // optional jurisdiction hint
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the target contains invalid fields.
func (t *Target) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "target name required")
	}
	return nil
}

// Outcome is the persisted result of enriching one target. Evidence is an
// append-only audit note recording which stages fired and why.
type Outcome struct {
	TargetID   string    `json:"targetId"`
	Status     Status    `json:"status"`
	Domain     string    `json:"domain"`
	Email      string    `json:"email"`
	Confidence int       `json:"confidence"`
	SourceURL  string    `json:"sourceUrl"`
	Evidence   string    `json:"evidence"`
	Query      string    `json:"query"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// Validate returns an error if the outcome contains invalid fields.
func (o *Outcome) Validate() error {
	if o.TargetID == "" {
		return Errorf(EINVALID, "outcome target ID required")
	}
	if !o.Status.Terminal() {
		return Errorf(EINVALID, "outcome status %q is not terminal", o.Status)
	}
	return nil
}

// OutcomeFilter represents a filter for FindOutcomes.
type OutcomeFilter struct {
	TargetID *string `json:"targetId"`
	Status   *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TargetService is the record source and sink for the pipeline.
// PersistOutcome must be an upsert: calling it more than once for the same
// target appends evidence but never creates duplicate rows.
type TargetService interface {
	// CreateTarget creates a new pending target.
	CreateTarget(ctx context.Context, target *Target) error

	// FindTargetByID retrieves a target by ID.
	// Returns ENOTFOUND if the target does not exist.
	FindTargetByID(ctx context.Context, id string) (*Target, error)

	// FetchPending returns up to limit pending targets, oldest first.
	FetchPending(ctx context.Context, limit int) ([]*Target, error)

	// PersistOutcome upserts the outcome and moves the target to the
	// outcome's status.
	PersistOutcome(ctx context.Context, outcome *Outcome) error

	// FindOutcomes retrieves outcomes matching the filter.
	FindOutcomes(ctx context.Context, filter OutcomeFilter) ([]*Outcome, error)

	// CountByStatus returns the number of targets in each status.
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
