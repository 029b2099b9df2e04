package appraisal

import "context"

type DisputeInput struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type ResolveDisputeInput struct {
	Action             string   `json:"action"`
	ResolutionSummary  string   `json:"resolutionSummary,omitempty"`
	AdjustedTotalScore *float64 `json:"adjustedTotalScore,omitempty"`
	AdjustedLabel      string   `json:"adjustedRatingLabel,omitempty"`
}

// CreateDispute lets the appraised employee contest a published record. The
// open-dispute uniqueness check happens inside the insert, so two racing
// calls cannot both open a dispute.
func (s *Service) CreateDispute(ctx context.Context, caller Caller, recordID string, input DisputeInput) (*Dispute, error) {
	if input.Reason == "" {
		return nil, validationf("dispute reason is required")
	}
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("appraisal record %s", recordID)
	}
	if caller.EmployeeID != rec.EmployeeID {
		return nil, forbiddenf("only the appraised employee can raise a dispute")
	}
	if rec.Status != RecordStatusHRPublished {
		return nil, conflictf("appraisal record is not yet published")
	}

	now := s.now()
	if rec.HRPublishedAt != nil && now.Sub(*rec.HRPublishedAt) > s.disputeWindow {
		return nil, conflictf("dispute window expired")
	}

	d := &Dispute{
		AppraisalID:  recordID,
		AssignmentID: rec.AssignmentID,
		CycleID:      rec.CycleID,
		RaisedByID:   caller.EmployeeID,
		Reason:       input.Reason,
		Details:      input.Details,
		Status:       DisputeStatusOpen,
		SubmittedAt:  now,
	}
	id, inserted, err := s.store.CreateDisputeIfNoneActive(ctx, d)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, conflictf("an open dispute already exists for this appraisal")
	}
	d.ID = id
	return d, nil
}

// ReviewDispute moves an open dispute under HR review.
func (s *Service) ReviewDispute(ctx context.Context, caller Caller, disputeID string) (*Dispute, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can review disputes")
	}
	d, err := s.store.GetDispute(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFoundf("dispute %s", disputeID)
	}
	moved, err := s.store.MarkDisputeUnderReview(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, conflictf("dispute is not open")
	}
	return s.store.GetDispute(ctx, disputeID)
}

// ResolveDispute closes a dispute. Approval may carry an adjusted score and
// label which overwrite the record outcome and propagate to the employee
// profile; rejection leaves the record untouched.
func (s *Service) ResolveDispute(ctx context.Context, caller Caller, disputeID string, input ResolveDisputeInput) (*Dispute, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can resolve disputes")
	}
	if input.Action != DisputeApprove && input.Action != DisputeReject {
		return nil, validationf("resolution action must be %q or %q", DisputeApprove, DisputeReject)
	}
	d, err := s.store.GetDispute(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFoundf("dispute %s", disputeID)
	}

	status := DisputeStatusRejected
	if input.Action == DisputeApprove {
		status = DisputeStatusAdjusted
	}
	resolved, err := s.store.ResolveDisputeIfActive(ctx, disputeID, status, input.ResolutionSummary, caller.EmployeeID, s.now())
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, conflictf("dispute is already resolved")
	}

	if input.Action == DisputeApprove && (input.AdjustedTotalScore != nil || input.AdjustedLabel != "") {
		if err := s.applyAdjustment(ctx, d.AppraisalID, input.AdjustedTotalScore, input.AdjustedLabel); err != nil {
			return nil, err
		}
	}
	return s.store.GetDispute(ctx, disputeID)
}

func (s *Service) applyAdjustment(ctx context.Context, recordID string, score *float64, label string) error {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return notFoundf("appraisal record %s", recordID)
	}

	if score == nil {
		score = rec.TotalScore
	}
	if label == "" {
		label = rec.OverallRatingLabel
	}
	if err := s.store.OverrideRecordOutcome(ctx, recordID, score, label); err != nil {
		return err
	}

	rec.TotalScore = score
	rec.OverallRatingLabel = label
	return s.writeBackProfile(ctx, rec)
}

// GetDispute returns one dispute. Non-HR callers see only disputes they
// raised.
func (s *Service) GetDispute(ctx context.Context, caller Caller, id string) (*Dispute, error) {
	d, err := s.store.GetDispute(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFoundf("dispute %s", id)
	}
	if !caller.isHR() && d.RaisedByID != caller.EmployeeID {
		return nil, forbiddenf("caller may not view this dispute")
	}
	return d, nil
}

// ListDisputes filters disputes. Non-HR callers are pinned to their own
// regardless of the requested filter.
func (s *Service) ListDisputes(ctx context.Context, caller Caller, filter DisputeFilter) ([]Dispute, error) {
	if !caller.isHR() {
		filter.EmployeeID = caller.EmployeeID
	}
	return s.store.ListDisputes(ctx, filter)
}
