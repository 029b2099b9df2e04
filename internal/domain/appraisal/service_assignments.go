package appraisal

import (
	"context"
	"errors"

	"appraisal/internal/domain/directory"
)

// CreateAssignments creates one assignment per employee in the cycle. Each
// employee is handled independently; the first failing employee aborts the
// call with the already-created assignments returned alongside the error.
//
// There is intentionally no guard against re-assigning an (employee, cycle)
// pair that already has an assignment; re-runs create fresh assignments.
func (s *Service) CreateAssignments(ctx context.Context, caller Caller, cycleID string, employeeIDs []string, templateID, creatorID string) ([]Assignment, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can create appraisal assignments")
	}
	if len(employeeIDs) == 0 {
		return nil, validationf("at least one employee id is required")
	}

	cycle, err := s.store.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, notFoundf("cycle %s", cycleID)
	}
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, notFoundf("template %s", templateID)
	}

	var created []Assignment
	for _, employeeID := range employeeIDs {
		a, err := s.createAssignment(ctx, cycle, tmpl, employeeID, creatorID)
		if err != nil {
			return created, err
		}
		created = append(created, *a)
	}
	return created, nil
}

func (s *Service) createAssignment(ctx context.Context, cycle *Cycle, tmpl *Template, employeeID, creatorID string) (*Assignment, error) {
	emp, err := s.directory.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			return nil, notFoundf("employee %s", employeeID)
		}
		return nil, err
	}

	managerID := s.resolveManager(ctx, emp)
	if managerID == "" && creatorID != "" {
		// No supervisor resolvable: fall back to the creator so the
		// appraisal stays visible to HR. Business heuristic, not a
		// structural guarantee.
		managerID = creatorID
	}

	departmentID := emp.DepartmentID
	if departmentID == "" {
		departmentID = firstScopedDepartment(cycle, tmpl.ID)
	}
	if departmentID == "" {
		return nil, validationf("no department resolvable for employee %s", employeeID)
	}

	a := &Assignment{
		CycleID:      cycle.ID,
		TemplateID:   tmpl.ID,
		EmployeeID:   employeeID,
		ManagerID:    managerID,
		DepartmentID: departmentID,
		PositionID:   emp.PositionID,
		Status:       AssignmentStatusNotStarted,
		DueDate:      cycle.ManagerDueDate,
	}
	id, err := s.store.CreateAssignment(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// resolveManager finds the holder of the employee's supervisor position.
// A vacant position or a lookup landing back on the employee itself both
// count as unresolved.
func (s *Service) resolveManager(ctx context.Context, emp *directory.Employee) string {
	if emp.SupervisorPositionID == "" {
		return ""
	}
	mgr, err := s.directory.FindEmployeeByPosition(ctx, emp.SupervisorPositionID)
	if err != nil || mgr == nil {
		return ""
	}
	if mgr.ID == emp.ID {
		return ""
	}
	return mgr.ID
}

func firstScopedDepartment(cycle *Cycle, templateID string) string {
	for _, ta := range cycle.TemplateAssignments {
		if ta.TemplateID == templateID && len(ta.DepartmentIDs) > 0 {
			return ta.DepartmentIDs[0]
		}
	}
	return ""
}

func (s *Service) GetAssignment(ctx context.Context, id string) (*Assignment, error) {
	a, err := s.store.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFoundf("assignment %s", id)
	}
	return a, nil
}

func (s *Service) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]Assignment, error) {
	return s.store.ListAssignments(ctx, filter)
}

// DeleteAssignment refuses to orphan appraisal records.
func (s *Service) DeleteAssignment(ctx context.Context, caller Caller, id string) error {
	if !caller.isHR() {
		return forbiddenf("only HR can delete appraisal assignments")
	}
	count, err := s.store.CountRecordsByAssignment(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return conflictf("assignment has appraisal records and cannot be deleted")
	}
	ok, err := s.store.DeleteAssignment(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundf("assignment %s", id)
	}
	return nil
}
