package appraisal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetProgressByDepartment(t *testing.T) {
	svc, store, _ := newTestService()
	statuses := []string{
		AssignmentStatusNotStarted,
		AssignmentStatusInProgress,
		AssignmentStatusSubmitted,
		AssignmentStatusPublished,
		AssignmentStatusPublished,
		AssignmentStatusAcknowledged,
	}
	for i, status := range statuses {
		store.assignments[string(rune('a'+i))] = &Assignment{
			ID:           string(rune('a' + i)),
			DepartmentID: "dept-1",
			Status:       status,
		}
	}
	store.assignments["other"] = &Assignment{ID: "other", DepartmentID: "dept-2", Status: AssignmentStatusNotStarted}

	p, err := svc.GetProgressByDepartment(context.Background(), "dept-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Total != 6 {
		t.Fatalf("expected total 6, got %d", p.Total)
	}
	if p.NotStarted != 1 || p.InProgress != 1 || p.Submitted != 1 || p.Published != 2 || p.Acknowledged != 1 {
		t.Fatalf("unexpected counts: %+v", p)
	}
	// (2 published + 1 acknowledged) / 6 = 50%.
	if p.CompletionRate != 50.0 {
		t.Fatalf("expected completion 50.0, got %v", p.CompletionRate)
	}
}

func TestGetProgressRequiresDepartment(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.GetProgressByDepartment(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestGetProgressEmptyDepartment(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.GetProgressByDepartment(context.Background(), "dept-empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Total != 0 || p.CompletionRate != 0 {
		t.Fatalf("expected zero progress, got %+v", p)
	}
}

func TestListPendingAcknowledgements(t *testing.T) {
	svc, store, dir := newTestService()
	id := seedAssignment(t, svc, store, dir)

	rec, err := svc.CreateOrUpdateRecord(context.Background(), managerCaller(), id, draftInput())
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	submitAndPublish(t, svc, rec.ID)

	// No acknowledgement due date on the cycle: nothing pending.
	pending, err := svc.ListPendingAcknowledgements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected none pending, got %d", len(pending))
	}

	// Put the due date in the past.
	for _, c := range store.cycles {
		due := testClock.Add(-24 * time.Hour)
		c.EmployeeAckDueDate = &due
	}
	pending, err = svc.ListPendingAcknowledgements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].EmployeeID != "emp-1" || pending[0].RecordID != rec.ID {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	// Acknowledged assignments drop out.
	if _, err := svc.AcknowledgeRecord(context.Background(), subjectCaller(), rec.ID, ""); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	pending, err = svc.ListPendingAcknowledgements(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected none pending after ack, got %d", len(pending))
	}
}
