package appraisal

import (
	"context"
	"math"
)

// GetProgressByDepartment aggregates assignment statuses for one department.
// Completion counts published and acknowledged appraisals.
func (s *Service) GetProgressByDepartment(ctx context.Context, departmentID string) (*DepartmentProgress, error) {
	if departmentID == "" {
		return nil, validationf("department id is required")
	}
	counts, err := s.store.DepartmentStatusCounts(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return buildProgress(counts), nil
}

func buildProgress(counts map[string]int) *DepartmentProgress {
	p := &DepartmentProgress{
		NotStarted:   counts[AssignmentStatusNotStarted],
		InProgress:   counts[AssignmentStatusInProgress],
		Submitted:    counts[AssignmentStatusSubmitted],
		Published:    counts[AssignmentStatusPublished],
		Acknowledged: counts[AssignmentStatusAcknowledged],
	}
	p.Total = p.NotStarted + p.InProgress + p.Submitted + p.Published + p.Acknowledged
	if p.Total > 0 {
		rate := float64(p.Published+p.Acknowledged) / float64(p.Total) * 100
		p.CompletionRate = math.Round(rate*100) / 100
	}
	return p
}

// ListPendingAcknowledgements is the reminder feed: published appraisals the
// employee has not acknowledged past the cycle's acknowledgement due date.
// Read-only; nothing here schedules or sends anything.
func (s *Service) ListPendingAcknowledgements(ctx context.Context) ([]PendingAck, error) {
	return s.store.ListPendingAcknowledgements(ctx, s.now())
}
