package appraisal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const disputeColumns = `
    id, appraisal_id, assignment_id, cycle_id, raised_by,
    reason, COALESCE(details, ''), status, submitted_at,
    COALESCE(resolution_summary, ''), resolved_at,
    COALESCE(resolved_by::text, '')`

func scanDispute(row pgx.Row) (*Dispute, error) {
	var d Dispute
	err := row.Scan(&d.ID, &d.AppraisalID, &d.AssignmentID, &d.CycleID, &d.RaisedByID,
		&d.Reason, &d.Details, &d.Status, &d.SubmittedAt,
		&d.ResolutionSummary, &d.ResolvedAt, &d.ResolvedByID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// CreateDisputeIfNoneActive inserts the dispute unless an open or
// under-review one already exists for the record. The partial unique index
// ux_appraisal_disputes_active makes the existence check part of the insert,
// so racing creators cannot both succeed.
func (s *Store) CreateDisputeIfNoneActive(ctx context.Context, d *Dispute) (string, bool, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_disputes (appraisal_id, assignment_id, cycle_id, raised_by, reason, details, status, submitted_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (appraisal_id) WHERE status IN ('open','under_review') DO NOTHING
    RETURNING id
  `, d.AppraisalID, d.AssignmentID, d.CycleID, d.RaisedByID, d.Reason, d.Details, d.Status, d.SubmittedAt).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

func (s *Store) GetDispute(ctx context.Context, id string) (*Dispute, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+disputeColumns+`
    FROM appraisal_disputes
    WHERE id = $1
  `, id)
	return scanDispute(row)
}

func (s *Store) ListDisputes(ctx context.Context, filter DisputeFilter) ([]Dispute, error) {
	query := `
    SELECT ` + disputeColumns + `
    FROM appraisal_disputes
    WHERE 1=1
  `
	var args []any
	add := func(column, value string) {
		if value != "" {
			args = append(args, value)
			query += fmt.Sprintf(" AND %s = $%d", column, len(args))
		}
	}
	add("appraisal_id", filter.AppraisalID)
	add("cycle_id", filter.CycleID)
	add("raised_by", filter.EmployeeID)
	add("status", filter.Status)
	query += " ORDER BY submitted_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disputes []Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, *d)
	}
	return disputes, rows.Err()
}

func (s *Store) MarkDisputeUnderReview(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_disputes
    SET status = $2
    WHERE id = $1 AND status = $3
  `, id, DisputeStatusUnderReview, DisputeStatusOpen)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ResolveDisputeIfActive(ctx context.Context, id, status, summary, resolvedByID string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_disputes
    SET status = $2, resolution_summary = $3, resolved_by = NULLIF($4,'')::uuid, resolved_at = $5
    WHERE id = $1 AND status IN ($6, $7)
  `, id, status, summary, resolvedByID, at, DisputeStatusOpen, DisputeStatusUnderReview)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
