package appraisal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const assignmentColumns = `
    id, cycle_id, template_id, employee_id,
    COALESCE(manager_id::text, ''),
    department_id,
    COALESCE(position_id::text, ''),
    status, due_date, submitted_at, published_at,
    COALESCE(latest_record_id::text, ''),
    created_at`

func scanAssignment(row pgx.Row) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.CycleID, &a.TemplateID, &a.EmployeeID,
		&a.ManagerID, &a.DepartmentID, &a.PositionID,
		&a.Status, &a.DueDate, &a.SubmittedAt, &a.PublishedAt,
		&a.LatestRecordID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAssignment(ctx context.Context, a *Assignment) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_assignments (cycle_id, template_id, employee_id, manager_id, department_id, position_id, status, due_date)
    VALUES ($1,$2,$3,NULLIF($4,'')::uuid,$5,NULLIF($6,'')::uuid,$7,$8)
    RETURNING id
  `, a.CycleID, a.TemplateID, a.EmployeeID, a.ManagerID, a.DepartmentID, a.PositionID, a.Status, a.DueDate).Scan(&id)
	return id, err
}

func (s *Store) GetAssignment(ctx context.Context, id string) (*Assignment, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+assignmentColumns+`
    FROM appraisal_assignments
    WHERE id = $1
  `, id)
	return scanAssignment(row)
}

func (s *Store) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]Assignment, error) {
	query := `
    SELECT ` + assignmentColumns + `
    FROM appraisal_assignments
    WHERE 1=1
  `
	var args []any
	add := func(clause, value string) {
		if value != "" {
			args = append(args, value)
			query += fmt.Sprintf(" AND %s = $%d", clause, len(args))
		}
	}
	add("cycle_id", filter.CycleID)
	add("employee_id", filter.EmployeeID)
	add("manager_id", filter.ManagerID)
	add("department_id", filter.DepartmentID)
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func (s *Store) DeleteAssignment(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM appraisal_assignments WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountRecordsByAssignment(ctx context.Context, assignmentID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appraisal_records WHERE assignment_id = $1", assignmentID).Scan(&count)
	return count, err
}

func (s *Store) MarkAssignmentInProgress(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_assignments
    SET status = $2
    WHERE id = $1 AND status = $3
  `, id, AssignmentStatusInProgress, AssignmentStatusNotStarted)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkAssignmentSubmitted(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_assignments
    SET status = $2, submitted_at = $3
    WHERE id = $1 AND status IN ($4, $5)
  `, id, AssignmentStatusSubmitted, at, AssignmentStatusNotStarted, AssignmentStatusInProgress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkAssignmentPublished(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_assignments
    SET status = $2, published_at = $3
    WHERE id = $1 AND status = $4
  `, id, AssignmentStatusPublished, at, AssignmentStatusSubmitted)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) MarkAssignmentAcknowledged(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_assignments
    SET status = $2
    WHERE id = $1 AND status = $3
  `, id, AssignmentStatusAcknowledged, AssignmentStatusPublished)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) SetAssignmentLatestRecord(ctx context.Context, id, recordID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE appraisal_assignments SET latest_record_id = $2 WHERE id = $1", id, recordID)
	return err
}

func (s *Store) DepartmentStatusCounts(ctx context.Context, departmentID string) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT status, COUNT(1)
    FROM appraisal_assignments
    WHERE department_id = $1
    GROUP BY status
  `, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *Store) ListPendingAcknowledgements(ctx context.Context, now time.Time) ([]PendingAck, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, COALESCE(a.latest_record_id::text, ''), a.employee_id, a.cycle_id, c.employee_ack_due_date
    FROM appraisal_assignments a
    JOIN appraisal_cycles c ON a.cycle_id = c.id
    WHERE a.status = $1
      AND c.employee_ack_due_date IS NOT NULL
      AND c.employee_ack_due_date < $2
    ORDER BY c.employee_ack_due_date
  `, AssignmentStatusPublished, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingAck
	for rows.Next() {
		var p PendingAck
		if err := rows.Scan(&p.AssignmentID, &p.RecordID, &p.EmployeeID, &p.CycleID, &p.AckDueDate); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
