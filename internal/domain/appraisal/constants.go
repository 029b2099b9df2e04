package appraisal

const (
	AssignmentStatusNotStarted   = "not_started"
	AssignmentStatusInProgress   = "in_progress"
	AssignmentStatusSubmitted    = "submitted"
	AssignmentStatusPublished    = "published"
	AssignmentStatusAcknowledged = "acknowledged"
)

const (
	RecordStatusDraft            = "draft"
	RecordStatusManagerSubmitted = "manager_submitted"
	RecordStatusHRPublished      = "hr_published"
)

const (
	DisputeStatusOpen        = "open"
	DisputeStatusUnderReview = "under_review"
	DisputeStatusAdjusted    = "adjusted"
	DisputeStatusRejected    = "rejected"
)

const (
	DisputeApprove = "approve"
	DisputeReject  = "reject"
)

// Default band labels used when a template's scale carries none of its own.
const (
	LabelExcellent        = "Excellent"
	LabelGood             = "Good"
	LabelSatisfactory     = "Satisfactory"
	LabelNeedsImprovement = "Needs Improvement"
	LabelUnsatisfactory   = "Unsatisfactory"
)
