package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sysiphe "github.com/Holyblitz/Sysiphe-v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sysiphe.TargetService = (*TargetService)(nil)

// TargetService implements sysiphe.TargetService using SQLite.
type TargetService struct {
	db *DB
}

// NewTargetService creates a new TargetService.
func NewTargetService(db *DB) *TargetService {
	return &TargetService{db: db}
}

// CreateTarget creates a new pending target.
func (s *TargetService) CreateTarget(ctx context.Context, target *sysiphe.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	target.ID = uuid.New().String()
	target.Status = sysiphe.StatusPending
	now := time.Now().UTC()
	target.CreatedAt = now
	target.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO targets (id, name, known_domain, state, postcode, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, target.ID, target.Name, target.KnownDomain, target.State, target.Postcode, target.Status,
		target.CreatedAt.Format(time.RFC3339), target.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindTargetByID retrieves a target by ID.
func (s *TargetService) FindTargetByID(ctx context.Context, id string) (*sysiphe.Target, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, known_domain, state, postcode, status, created_at, updated_at
		FROM targets
		WHERE id = ?
	`, id)

	target, err := scanTarget(row.Scan)
	if err == sql.ErrNoRows {
		return nil, sysiphe.Errorf(sysiphe.ENOTFOUND, "target not found")
	}
	if err != nil {
		return nil, err
	}
	return target, nil
}

// FetchPending returns up to limit pending targets, oldest first.
func (s *TargetService) FetchPending(ctx context.Context, limit int) ([]*sysiphe.Target, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, name, known_domain, state, postcode, status, created_at, updated_at
		FROM targets
		WHERE status = ?
		ORDER BY updated_at ASC, id ASC
	`)
	args = append(args, sysiphe.StatusPending)
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []*sysiphe.Target
	for rows.Next() {
		target, err := scanTarget(rows.Scan)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

// PersistOutcome upserts the outcome and moves the target to the outcome's
// status. Re-running a target replaces its contact row and appends the new
// evidence to the existing audit trail.
func (s *TargetService) PersistOutcome(ctx context.Context, outcome *sysiphe.Outcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}

	if outcome.CheckedAt.IsZero() {
		outcome.CheckedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (target_id, status, domain, email, confidence, source_url, evidence, query, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(target_id) DO UPDATE SET
			status = excluded.status,
			domain = excluded.domain,
			email = excluded.email,
			confidence = excluded.confidence,
			source_url = excluded.source_url,
			evidence = CASE
				WHEN contacts.evidence = '' THEN excluded.evidence
				ELSE contacts.evidence || char(10) || excluded.evidence
			END,
			query = excluded.query,
			checked_at = excluded.checked_at
	`, outcome.TargetID, outcome.Status, outcome.Domain, outcome.Email, outcome.Confidence,
		outcome.SourceURL, outcome.Evidence, outcome.Query, outcome.CheckedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE targets SET status = ?, updated_at = ? WHERE id = ?
	`, outcome.Status, time.Now().UTC().Format(time.RFC3339), outcome.TargetID)
	if err != nil {
		return fmt.Errorf("failed to update target status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sysiphe.Errorf(sysiphe.ENOTFOUND, "target not found")
	}
	return nil
}

// FindOutcomes retrieves outcomes matching the filter, most recent first.
func (s *TargetService) FindOutcomes(ctx context.Context, filter sysiphe.OutcomeFilter) ([]*sysiphe.Outcome, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT target_id, status, domain, email, confidence, source_url, evidence, query, checked_at
		FROM contacts
		WHERE 1=1
	`)
	if filter.TargetID != nil {
		query.WriteString(" AND target_id = ?")
		args = append(args, *filter.TargetID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}
	query.WriteString(" ORDER BY checked_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []*sysiphe.Outcome
	for rows.Next() {
		var outcome sysiphe.Outcome
		var checkedAt string

		if err := rows.Scan(&outcome.TargetID, &outcome.Status, &outcome.Domain, &outcome.Email,
			&outcome.Confidence, &outcome.SourceURL, &outcome.Evidence, &outcome.Query,
			&checkedAt); err != nil {
			return nil, err
		}
		outcome.CheckedAt, err = parseRFC3339(checkedAt, "checked_at")
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, &outcome)
	}
	return outcomes, rows.Err()
}

// CountByStatus returns the number of targets in each status.
func (s *TargetService) CountByStatus(ctx context.Context) (map[sysiphe.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM targets GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[sysiphe.Status]int)
	for rows.Next() {
		var status sysiphe.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// scanTarget scans one targets row using the given Scan function, shared
// between single-row and multi-row queries.
func scanTarget(scan func(dest ...any) error) (*sysiphe.Target, error) {
	var target sysiphe.Target
	var createdAt, updatedAt string

	if err := scan(&target.ID, &target.Name, &target.KnownDomain, &target.State, &target.Postcode,
		&target.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	target.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	target.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}
	return &target, nil
}
