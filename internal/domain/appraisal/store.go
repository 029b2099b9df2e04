package appraisal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres implementation of StoreAPI. Rating scales, criteria
// and template/department scoping live in JSONB columns; workflow state lives
// in plain columns so transitions can be guarded in SQL.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

var _ StoreAPI = (*Store)(nil)

func (s *Store) CreateTemplate(ctx context.Context, t *Template) (string, error) {
	scaleJSON, err := json.Marshal(t.RatingScale)
	if err != nil {
		return "", err
	}
	criteriaJSON, err := json.Marshal(t.Criteria)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_templates (name, rating_scale, criteria, department_ids, position_ids, is_active)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, t.Name, scaleJSON, criteriaJSON, t.ApplicableDepartmentIDs, t.ApplicablePositionIDs, t.IsActive).Scan(&id)
	return id, err
}

func (s *Store) UpdateTemplate(ctx context.Context, t *Template) (bool, error) {
	scaleJSON, err := json.Marshal(t.RatingScale)
	if err != nil {
		return false, err
	}
	criteriaJSON, err := json.Marshal(t.Criteria)
	if err != nil {
		return false, err
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_templates
    SET name = $2, rating_scale = $3, criteria = $4, department_ids = $5, position_ids = $6, is_active = $7, updated_at = now()
    WHERE id = $1
  `, t.ID, t.Name, scaleJSON, criteriaJSON, t.ApplicableDepartmentIDs, t.ApplicablePositionIDs, t.IsActive)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanTemplate(row pgx.Row) (*Template, error) {
	var t Template
	var scaleJSON, criteriaJSON []byte
	err := row.Scan(&t.ID, &t.Name, &scaleJSON, &criteriaJSON,
		&t.ApplicableDepartmentIDs, &t.ApplicablePositionIDs, &t.IsActive,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(scaleJSON, &t.RatingScale); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(criteriaJSON, &t.Criteria); err != nil {
		return nil, err
	}
	return &t, nil
}

const templateColumns = `
    id, name, rating_scale, criteria, department_ids, position_ids, is_active, created_at, updated_at`

func (s *Store) GetTemplate(ctx context.Context, id string) (*Template, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+templateColumns+`
    FROM appraisal_templates
    WHERE id = $1
  `, id)
	return scanTemplate(row)
}

func (s *Store) ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error) {
	query := `
    SELECT ` + templateColumns + `
    FROM appraisal_templates
  `
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM appraisal_templates WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CreateCycle(ctx context.Context, c *Cycle) (string, error) {
	taJSON, err := json.Marshal(c.TemplateAssignments)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_cycles (name, cycle_type, start_date, end_date, manager_due_date, employee_ack_due_date, template_assignments)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, c.Name, c.CycleType, c.StartDate, c.EndDate, c.ManagerDueDate, c.EmployeeAckDueDate, taJSON).Scan(&id)
	return id, err
}

func (s *Store) UpdateCycle(ctx context.Context, c *Cycle) (bool, error) {
	taJSON, err := json.Marshal(c.TemplateAssignments)
	if err != nil {
		return false, err
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisal_cycles
    SET name = $2, cycle_type = $3, start_date = $4, end_date = $5, manager_due_date = $6, employee_ack_due_date = $7, template_assignments = $8
    WHERE id = $1
  `, c.ID, c.Name, c.CycleType, c.StartDate, c.EndDate, c.ManagerDueDate, c.EmployeeAckDueDate, taJSON)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanCycle(row pgx.Row) (*Cycle, error) {
	var c Cycle
	var taJSON []byte
	err := row.Scan(&c.ID, &c.Name, &c.CycleType, &c.StartDate, &c.EndDate,
		&c.ManagerDueDate, &c.EmployeeAckDueDate, &taJSON, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(taJSON, &c.TemplateAssignments); err != nil {
		return nil, err
	}
	return &c, nil
}

const cycleColumns = `
    id, name, COALESCE(cycle_type, ''), start_date, end_date, manager_due_date, employee_ack_due_date, template_assignments, created_at`

func (s *Store) GetCycle(ctx context.Context, id string) (*Cycle, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+cycleColumns+`
    FROM appraisal_cycles
    WHERE id = $1
  `, id)
	return scanCycle(row)
}

func (s *Store) ListCycles(ctx context.Context) ([]Cycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+cycleColumns+`
    FROM appraisal_cycles
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, *c)
	}
	return cycles, rows.Err()
}

func (s *Store) DeleteCycle(ctx context.Context, id string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM appraisal_cycles WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountAssignmentsByCycle(ctx context.Context, cycleID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appraisal_assignments WHERE cycle_id = $1", cycleID).Scan(&count)
	return count, err
}
