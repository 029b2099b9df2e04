package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, first_name, last_name, email,
    COALESCE(department_id::text, ''),
    COALESCE(position_id::text, ''),
    COALESCE(supervisor_position_id::text, ''),
    role, status,
    latest_appraisal_score,
    COALESCE(latest_appraisal_label, ''),
    COALESCE(latest_appraisal_scale_type, ''),
    COALESCE(latest_appraisal_cycle_id::text, ''),
    COALESCE(latest_appraisal_template_id::text, ''),
    appraisal_history,
    created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	var score *float64
	var label, scaleType, cycleID, templateID string
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email,
		&e.DepartmentID, &e.PositionID, &e.SupervisorPositionID,
		&e.Role, &e.Status,
		&score, &label, &scaleType, &cycleID, &templateID,
		&e.AppraisalHistory, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if score != nil || label != "" {
		e.LatestAppraisal = &Appraisal{
			Score:      score,
			Label:      label,
			ScaleType:  scaleType,
			CycleID:    cycleID,
			TemplateID: templateID,
		}
	}
	return &e, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID)
	return scanEmployee(row)
}

// FindEmployeeByPosition returns the first active holder of the position, or
// ErrEmployeeNotFound when the position is vacant.
func (s *Store) FindEmployeeByPosition(ctx context.Context, positionID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE position_id = $1 AND status = 'active'
    ORDER BY created_at
    LIMIT 1
  `, positionID)
	return scanEmployee(row)
}

func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*Employee, string, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE email = $1 AND status = 'active'
  `, email)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, "", err
	}
	var hash string
	if err := s.DB.QueryRow(ctx, "SELECT COALESCE(password_hash, '') FROM employees WHERE id = $1", e.ID).Scan(&hash); err != nil {
		return nil, "", err
	}
	return e, hash, nil
}

// UpdateAppraisalSummary writes the publish-time summary block and appends
// the record id to the profile's appraisal history unless already present.
// Single statement so republish and dispute adjustment stay idempotent.
func (s *Store) UpdateAppraisalSummary(ctx context.Context, employeeID string, summary Appraisal, recordID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET latest_appraisal_score = $2,
        latest_appraisal_label = $3,
        latest_appraisal_scale_type = $4,
        latest_appraisal_cycle_id = NULLIF($5, '')::uuid,
        latest_appraisal_template_id = NULLIF($6, '')::uuid,
        appraisal_history = CASE
          WHEN $7 = ANY(appraisal_history) THEN appraisal_history
          ELSE array_append(appraisal_history, $7)
        END
    WHERE id = $1
  `, employeeID, summary.Score, summary.Label, summary.ScaleType, summary.CycleID, summary.TemplateID, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ListEmployees(ctx context.Context, departmentID string) ([]Employee, error) {
	query := `
    SELECT ` + employeeColumns + `
    FROM employees
  `
	var args []any
	if departmentID != "" {
		query += " WHERE department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, e Employee, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, department_id, position_id, supervisor_position_id, role, status, password_hash)
    VALUES ($1,$2,$3,NULLIF($4,'')::uuid,NULLIF($5,'')::uuid,NULLIF($6,'')::uuid,$7,$8,$9)
    RETURNING id
  `, e.FirstName, e.LastName, e.Email, e.DepartmentID, e.PositionID, e.SupervisorPositionID, e.Role, e.Status, passwordHash).Scan(&id)
	return id, err
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(parent_id::text, ''), created_at
    FROM departments
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.ParentID, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, name, parentID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, parent_id)
    VALUES ($1, NULLIF($2,'')::uuid)
    RETURNING id
  `, name, parentID).Scan(&id)
	return id, err
}

func (s *Store) ListPositions(ctx context.Context) ([]Position, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, COALESCE(department_id::text, ''), created_at
    FROM positions
    ORDER BY title
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Title, &p.DepartmentID, &p.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *Store) CreatePosition(ctx context.Context, title, departmentID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO positions (title, department_id)
    VALUES ($1, NULLIF($2,'')::uuid)
    RETURNING id
  `, title, departmentID).Scan(&id)
	return id, err
}
