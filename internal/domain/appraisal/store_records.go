package appraisal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const recordColumns = `
    id, assignment_id, cycle_id, template_id, employee_id,
    COALESCE(manager_id::text, ''),
    ratings, total_score,
    COALESCE(overall_rating_label, ''),
    COALESCE(manager_summary, ''),
    COALESCE(strengths, ''),
    COALESCE(improvement_areas, ''),
    status, manager_submitted_at, hr_published_at,
    COALESCE(published_by::text, ''),
    employee_viewed_at, employee_acknowledged_at,
    COALESCE(employee_ack_comment, ''),
    created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	var ratingsJSON []byte
	err := row.Scan(&r.ID, &r.AssignmentID, &r.CycleID, &r.TemplateID, &r.EmployeeID,
		&r.ManagerID, &ratingsJSON, &r.TotalScore, &r.OverallRatingLabel,
		&r.ManagerSummary, &r.Strengths, &r.ImprovementAreas,
		&r.Status, &r.ManagerSubmittedAt, &r.HRPublishedAt, &r.PublishedByID,
		&r.EmployeeViewedAt, &r.EmployeeAckAt, &r.EmployeeAckComment,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(ratingsJSON, &r.Ratings); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateRecord(ctx context.Context, r *Record) (string, error) {
	ratingsJSON, err := json.Marshal(r.Ratings)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_records (assignment_id, cycle_id, template_id, employee_id, manager_id, ratings, total_score, overall_rating_label, manager_summary, strengths, improvement_areas, status)
    VALUES ($1,$2,$3,$4,NULLIF($5,'')::uuid,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, r.AssignmentID, r.CycleID, r.TemplateID, r.EmployeeID, r.ManagerID,
		ratingsJSON, r.TotalScore, r.OverallRatingLabel, r.ManagerSummary,
		r.Strengths, r.ImprovementAreas, r.Status).Scan(&id)
	return id, err
}

func (s *Store) GetRecord(ctx context.Context, id string) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM appraisal_records
    WHERE id = $1
  `, id)
	return scanRecord(row)
}

func (s *Store) GetRecordByAssignment(ctx context.Context, assignmentID string) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM appraisal_records
    WHERE assignment_id = $1
    ORDER BY created_at DESC
    LIMIT 1
  `, assignmentID)
	return scanRecord(row)
}

func (s *Store) listRecords(ctx context.Context, where string, arg any) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM appraisal_records
    WHERE `+where+`
    ORDER BY created_at DESC
  `, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func (s *Store) ListRecordsByEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	return s.listRecords(ctx, "employee_id = $1", employeeID)
}

func (s *Store) ListRecordsByManager(ctx context.Context, managerID string) ([]Record, error) {
	return s.listRecords(ctx, "manager_id = $1", managerID)
}

// UpdateRecordDraft rewrites the record content only while still in draft.
func (s *Store) UpdateRecordDraft(ctx context.Context, r *Record) (bool, error) {
	ratingsJSON, err := json.Marshal(r.Ratings)
	if err != nil {
		return false, err
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_records
    SET ratings = $2, total_score = $3, overall_rating_label = $4,
        manager_summary = $5, strengths = $6, improvement_areas = $7,
        updated_at = now()
    WHERE id = $1 AND status = $8
  `, r.ID, ratingsJSON, r.TotalScore, r.OverallRatingLabel,
		r.ManagerSummary, r.Strengths, r.ImprovementAreas, RecordStatusDraft)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkRecordSubmitted(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_records
    SET status = $2, manager_submitted_at = $3, updated_at = now()
    WHERE id = $1 AND status = $4
  `, id, RecordStatusManagerSubmitted, at, RecordStatusDraft)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkRecordPublished(ctx context.Context, id, publishedByID string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_records
    SET status = $2, hr_published_at = $3, published_by = NULLIF($4,'')::uuid, updated_at = now()
    WHERE id = $1 AND status = $5
  `, id, RecordStatusHRPublished, at, publishedByID, RecordStatusManagerSubmitted)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// StampRecordViewed records the first employee view; later views keep the
// original timestamp.
func (s *Store) StampRecordViewed(ctx context.Context, id string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE appraisal_records
    SET employee_viewed_at = COALESCE(employee_viewed_at, $2)
    WHERE id = $1
  `, id, at)
	return err
}

func (s *Store) MarkRecordAcknowledged(ctx context.Context, id, comment string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_records
    SET employee_acknowledged_at = $2, employee_ack_comment = $3, updated_at = now()
    WHERE id = $1 AND status = $4 AND employee_acknowledged_at IS NULL
  `, id, at, comment, RecordStatusHRPublished)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// OverrideRecordOutcome applies a dispute adjustment to the published score
// and label. Content stays frozen; only the outcome fields move.
func (s *Store) OverrideRecordOutcome(ctx context.Context, id string, score *float64, label string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE appraisal_records
    SET total_score = $2, overall_rating_label = $3, updated_at = now()
    WHERE id = $1
  `, id, score, label)
	return err
}
