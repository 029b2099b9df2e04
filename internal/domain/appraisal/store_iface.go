package appraisal

import (
	"context"
	"time"

	"appraisal/internal/domain/directory"
)

type AssignmentFilter struct {
	CycleID      string
	EmployeeID   string
	ManagerID    string
	DepartmentID string
}

type DisputeFilter struct {
	AppraisalID string
	CycleID     string
	EmployeeID  string
	Status      string
}

// StoreAPI is the persistence surface of the appraisal engine. The
// Mark*/Create*IfNoneActive methods are single-statement conditional writes:
// they return false when the precondition no longer held at write time, which
// the service surfaces as Conflict. That keeps check-then-set transitions
// atomic under racing callers.
type StoreAPI interface {
	CreateTemplate(ctx context.Context, t *Template) (string, error)
	UpdateTemplate(ctx context.Context, t *Template) (bool, error)
	GetTemplate(ctx context.Context, id string) (*Template, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error)
	DeleteTemplate(ctx context.Context, id string) (bool, error)

	CreateCycle(ctx context.Context, c *Cycle) (string, error)
	UpdateCycle(ctx context.Context, c *Cycle) (bool, error)
	GetCycle(ctx context.Context, id string) (*Cycle, error)
	ListCycles(ctx context.Context) ([]Cycle, error)
	DeleteCycle(ctx context.Context, id string) (bool, error)
	CountAssignmentsByCycle(ctx context.Context, cycleID string) (int, error)

	CreateAssignment(ctx context.Context, a *Assignment) (string, error)
	GetAssignment(ctx context.Context, id string) (*Assignment, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)
	DeleteAssignment(ctx context.Context, id string) (bool, error)
	CountRecordsByAssignment(ctx context.Context, assignmentID string) (int, error)
	MarkAssignmentInProgress(ctx context.Context, id string) (bool, error)
	MarkAssignmentSubmitted(ctx context.Context, id string, at time.Time) (bool, error)
	MarkAssignmentPublished(ctx context.Context, id string, at time.Time) (bool, error)
	MarkAssignmentAcknowledged(ctx context.Context, id string) (bool, error)
	SetAssignmentLatestRecord(ctx context.Context, id, recordID string) error

	CreateRecord(ctx context.Context, r *Record) (string, error)
	GetRecord(ctx context.Context, id string) (*Record, error)
	GetRecordByAssignment(ctx context.Context, assignmentID string) (*Record, error)
	ListRecordsByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	ListRecordsByManager(ctx context.Context, managerID string) ([]Record, error)
	UpdateRecordDraft(ctx context.Context, r *Record) (bool, error)
	MarkRecordSubmitted(ctx context.Context, id string, at time.Time) (bool, error)
	MarkRecordPublished(ctx context.Context, id, publishedByID string, at time.Time) (bool, error)
	StampRecordViewed(ctx context.Context, id string, at time.Time) error
	MarkRecordAcknowledged(ctx context.Context, id, comment string, at time.Time) (bool, error)
	OverrideRecordOutcome(ctx context.Context, id string, score *float64, label string) error

	CreateDisputeIfNoneActive(ctx context.Context, d *Dispute) (string, bool, error)
	GetDispute(ctx context.Context, id string) (*Dispute, error)
	ListDisputes(ctx context.Context, filter DisputeFilter) ([]Dispute, error)
	MarkDisputeUnderReview(ctx context.Context, id string) (bool, error)
	ResolveDisputeIfActive(ctx context.Context, id, status, summary, resolvedByID string, at time.Time) (bool, error)

	DepartmentStatusCounts(ctx context.Context, departmentID string) (map[string]int, error)
	ListPendingAcknowledgements(ctx context.Context, now time.Time) ([]PendingAck, error)
}

// DirectoryAPI is the slice of the org directory the engine consumes:
// read lookups plus the publish-time profile write-back.
type DirectoryAPI interface {
	GetEmployee(ctx context.Context, employeeID string) (*directory.Employee, error)
	FindEmployeeByPosition(ctx context.Context, positionID string) (*directory.Employee, error)
	UpdateAppraisalSummary(ctx context.Context, employeeID string, summary directory.Appraisal, recordID string) error
}
