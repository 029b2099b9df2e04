package appraisal

import (
	"context"

	"appraisal/internal/domain/directory"
)

// RecordInput is the manager-facing draft payload. Ratings arrive in either
// accepted wire shape and are canonicalized before anything else sees them.
type RecordInput struct {
	Ratings          []RatingInput `json:"ratings"`
	ManagerSummary   string        `json:"managerSummary,omitempty"`
	Strengths        string        `json:"strengths,omitempty"`
	ImprovementAreas string        `json:"improvementAreas,omitempty"`
}

func (s *Service) canReview(caller Caller, a *Assignment) bool {
	return caller.isHR() || (a.ManagerID != "" && caller.EmployeeID == a.ManagerID)
}

// GetAssignmentWithTemplate opens an assignment for editing. The first open
// moves a not-started assignment to in-progress.
func (s *Service) GetAssignmentWithTemplate(ctx context.Context, caller Caller, assignmentID string) (*AssignmentView, error) {
	a, err := s.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFoundf("assignment %s", assignmentID)
	}
	if !s.canReview(caller, a) {
		return nil, forbiddenf("caller is not the assigned reviewer")
	}

	if a.Status == AssignmentStatusNotStarted {
		if moved, err := s.store.MarkAssignmentInProgress(ctx, assignmentID); err != nil {
			return nil, err
		} else if moved {
			a.Status = AssignmentStatusInProgress
		}
	}

	tmpl, err := s.store.GetTemplate(ctx, a.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, notFoundf("template %s", a.TemplateID)
	}

	view := &AssignmentView{
		Assignment: *a,
		Template:   ResolvedRef(tmpl.ID, *tmpl),
	}
	rec, err := s.store.GetRecordByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	view.Record = rec
	return view, nil
}

// CreateOrUpdateRecord saves a draft. The total score and overall label are
// recomputed on every save; content edits are refused once the record has
// left draft.
func (s *Service) CreateOrUpdateRecord(ctx context.Context, caller Caller, assignmentID string, input RecordInput) (*Record, error) {
	a, err := s.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, notFoundf("assignment %s", assignmentID)
	}
	if !s.canReview(caller, a) {
		return nil, forbiddenf("caller is not the assigned reviewer")
	}

	tmpl, err := s.store.GetTemplate(ctx, a.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, notFoundf("template %s", a.TemplateID)
	}

	ratings, err := NormalizeRatings(input.Ratings, tmpl)
	if err != nil {
		return nil, err
	}
	result := Score(ratings, tmpl)

	existing, err := s.store.GetRecordByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		rec := &Record{
			AssignmentID:       assignmentID,
			CycleID:            a.CycleID,
			TemplateID:         a.TemplateID,
			EmployeeID:         a.EmployeeID,
			ManagerID:          a.ManagerID,
			Ratings:            ratings,
			TotalScore:         &result.TotalScore,
			OverallRatingLabel: result.RatingLabel,
			ManagerSummary:     input.ManagerSummary,
			Strengths:          input.Strengths,
			ImprovementAreas:   input.ImprovementAreas,
			Status:             RecordStatusDraft,
		}
		id, err := s.store.CreateRecord(ctx, rec)
		if err != nil {
			return nil, err
		}
		rec.ID = id
		if err := s.store.SetAssignmentLatestRecord(ctx, assignmentID, id); err != nil {
			return nil, err
		}
		if a.Status == AssignmentStatusNotStarted {
			if _, err := s.store.MarkAssignmentInProgress(ctx, assignmentID); err != nil {
				return nil, err
			}
		}
		return rec, nil
	}

	if existing.Status != RecordStatusDraft {
		return nil, conflictf("appraisal record already submitted")
	}
	existing.Ratings = ratings
	existing.TotalScore = &result.TotalScore
	existing.OverallRatingLabel = result.RatingLabel
	existing.ManagerSummary = input.ManagerSummary
	existing.Strengths = input.Strengths
	existing.ImprovementAreas = input.ImprovementAreas

	saved, err := s.store.UpdateRecordDraft(ctx, existing)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, conflictf("appraisal record already submitted")
	}
	return existing, nil
}

// SubmitRecord hands the draft to HR. Only the exact assigned manager may
// submit; HR cannot submit on a manager's behalf.
func (s *Service) SubmitRecord(ctx context.Context, caller Caller, recordID string) (*Record, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("appraisal record %s", recordID)
	}
	if rec.ManagerID == "" {
		return nil, validationf("appraisal has no assigned manager")
	}
	if caller.EmployeeID != rec.ManagerID {
		return nil, forbiddenf("only the assigned manager can submit")
	}

	now := s.now()
	moved, err := s.store.MarkRecordSubmitted(ctx, recordID, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, conflictf("appraisal record already submitted")
	}
	if _, err := s.store.MarkAssignmentSubmitted(ctx, rec.AssignmentID, now); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, recordID)
}

// PublishRecord releases the appraisal to the employee and writes the
// summary back to the employee's profile. The history append is set-add, so
// replays do not duplicate.
func (s *Service) PublishRecord(ctx context.Context, caller Caller, recordID string) (*Record, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can publish appraisal records")
	}
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("appraisal record %s", recordID)
	}

	now := s.now()
	moved, err := s.store.MarkRecordPublished(ctx, recordID, caller.EmployeeID, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, conflictf("appraisal record is not awaiting publication")
	}
	if _, err := s.store.MarkAssignmentPublished(ctx, rec.AssignmentID, now); err != nil {
		return nil, err
	}

	if err := s.writeBackProfile(ctx, rec); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, recordID)
}

func (s *Service) writeBackProfile(ctx context.Context, rec *Record) error {
	scaleType := ""
	if tmpl, err := s.store.GetTemplate(ctx, rec.TemplateID); err == nil && tmpl != nil {
		scaleType = tmpl.RatingScale.Type
	}
	return s.directory.UpdateAppraisalSummary(ctx, rec.EmployeeID, profileSummary(rec, scaleType), rec.ID)
}

func profileSummary(rec *Record, scaleType string) directory.Appraisal {
	return directory.Appraisal{
		Score:      rec.TotalScore,
		Label:      rec.OverallRatingLabel,
		ScaleType:  scaleType,
		CycleID:    rec.CycleID,
		TemplateID: rec.TemplateID,
	}
}

// ViewRecord returns the record to an authorized viewer. A plain employee
// sees it only once published; their first view is stamped and never reset.
func (s *Service) ViewRecord(ctx context.Context, caller Caller, recordID string) (*Record, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("appraisal record %s", recordID)
	}

	isSubject := caller.EmployeeID == rec.EmployeeID
	isManager := rec.ManagerID != "" && caller.EmployeeID == rec.ManagerID
	if !isSubject && !isManager && !caller.isHR() {
		return nil, forbiddenf("caller may not view this appraisal")
	}
	if isSubject && !isManager && !caller.isHR() {
		if rec.Status != RecordStatusHRPublished {
			return nil, conflictf("appraisal record is not yet published")
		}
		if rec.EmployeeViewedAt == nil {
			now := s.now()
			if err := s.store.StampRecordViewed(ctx, recordID, now); err != nil {
				return nil, err
			}
			rec.EmployeeViewedAt = &now
		}
	}
	return rec, nil
}

// AcknowledgeRecord closes the loop: subject employee confirms they have
// read the published appraisal.
func (s *Service) AcknowledgeRecord(ctx context.Context, caller Caller, recordID, comment string) (*Record, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("appraisal record %s", recordID)
	}
	if caller.EmployeeID != rec.EmployeeID {
		return nil, forbiddenf("only the appraised employee can acknowledge")
	}
	if rec.Status != RecordStatusHRPublished {
		return nil, conflictf("appraisal record is not yet published")
	}
	if rec.EmployeeAckAt != nil {
		return nil, conflictf("appraisal record already acknowledged")
	}

	acked, err := s.store.MarkRecordAcknowledged(ctx, recordID, comment, s.now())
	if err != nil {
		return nil, err
	}
	if !acked {
		return nil, conflictf("appraisal record already acknowledged")
	}
	if _, err := s.store.MarkAssignmentAcknowledged(ctx, rec.AssignmentID); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, recordID)
}

// ListRecordsByEmployee returns an employee's appraisal records. Only HR may
// query another employee, and the subject sees published records only; the
// same gate ViewRecord applies per record.
func (s *Service) ListRecordsByEmployee(ctx context.Context, caller Caller, employeeID string) ([]Record, error) {
	if !caller.isHR() && caller.EmployeeID != employeeID {
		return nil, forbiddenf("caller may not list another employee's appraisals")
	}
	records, err := s.store.ListRecordsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if caller.isHR() {
		return records, nil
	}
	published := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Status == RecordStatusHRPublished {
			published = append(published, r)
		}
	}
	return published, nil
}

// ListRecordsByManager returns a manager's review queue, drafts included.
// Only HR may query another manager's queue.
func (s *Service) ListRecordsByManager(ctx context.Context, caller Caller, managerID string) ([]Record, error) {
	if !caller.isHR() && caller.EmployeeID != managerID {
		return nil, forbiddenf("caller may not list another manager's appraisals")
	}
	return s.store.ListRecordsByManager(ctx, managerID)
}
