package appraisal

import "time"

// RatingScale describes how raw criterion values map onto the 0-100 score
// space. Labels, when present, partition the space evenly; otherwise the
// default bands apply.
type RatingScale struct {
	Type   string   `json:"type"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Step   float64  `json:"step,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

type Criterion struct {
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
	MaxScore    float64 `json:"maxScore,omitempty"`
	Required    bool    `json:"required,omitempty"`
}

type Template struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	RatingScale             RatingScale `json:"ratingScale"`
	Criteria                []Criterion `json:"criteria"`
	ApplicableDepartmentIDs []string    `json:"applicableDepartmentIds,omitempty"`
	ApplicablePositionIDs   []string    `json:"applicablePositionIds,omitempty"`
	IsActive                bool        `json:"isActive"`
	CreatedAt               time.Time   `json:"createdAt"`
	UpdatedAt               time.Time   `json:"updatedAt"`
}

// TemplateAssignment scopes a template to parts of the org within a cycle.
type TemplateAssignment struct {
	TemplateID    string   `json:"templateId"`
	DepartmentIDs []string `json:"departmentIds,omitempty"`
	PositionIDs   []string `json:"positionIds,omitempty"`
}

type Cycle struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	CycleType           string               `json:"cycleType,omitempty"`
	StartDate           time.Time            `json:"startDate"`
	EndDate             time.Time            `json:"endDate"`
	ManagerDueDate      *time.Time           `json:"managerDueDate,omitempty"`
	EmployeeAckDueDate  *time.Time           `json:"employeeAckDueDate,omitempty"`
	TemplateAssignments []TemplateAssignment `json:"templateAssignments,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
}

type Assignment struct {
	ID             string     `json:"id"`
	CycleID        string     `json:"cycleId"`
	TemplateID     string     `json:"templateId"`
	EmployeeID     string     `json:"employeeId"`
	ManagerID      string     `json:"managerId,omitempty"`
	DepartmentID   string     `json:"departmentId"`
	PositionID     string     `json:"positionId,omitempty"`
	Status         string     `json:"status"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	LatestRecordID string     `json:"latestRecordId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Rating is a single scored criterion inside a record, already normalized
// to the canonical shape.
type Rating struct {
	Key           string   `json:"criterionKey"`
	Title         string   `json:"title,omitempty"`
	RatingValue   float64  `json:"ratingValue"`
	WeightedScore *float64 `json:"weightedScore,omitempty"`
	Comments      string   `json:"comments,omitempty"`
}

type Record struct {
	ID                 string     `json:"id"`
	AssignmentID       string     `json:"assignmentId"`
	CycleID            string     `json:"cycleId"`
	TemplateID         string     `json:"templateId"`
	EmployeeID         string     `json:"employeeId"`
	ManagerID          string     `json:"managerId,omitempty"`
	Ratings            []Rating   `json:"ratings"`
	TotalScore         *float64   `json:"totalScore,omitempty"`
	OverallRatingLabel string     `json:"overallRatingLabel,omitempty"`
	ManagerSummary     string     `json:"managerSummary,omitempty"`
	Strengths          string     `json:"strengths,omitempty"`
	ImprovementAreas   string     `json:"improvementAreas,omitempty"`
	Status             string     `json:"status"`
	ManagerSubmittedAt *time.Time `json:"managerSubmittedAt,omitempty"`
	HRPublishedAt      *time.Time `json:"hrPublishedAt,omitempty"`
	PublishedByID      string     `json:"publishedBy,omitempty"`
	EmployeeViewedAt   *time.Time `json:"employeeViewedAt,omitempty"`
	EmployeeAckAt      *time.Time `json:"employeeAcknowledgedAt,omitempty"`
	EmployeeAckComment string     `json:"employeeAckComment,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type Dispute struct {
	ID                string     `json:"id"`
	AppraisalID       string     `json:"appraisalId"`
	AssignmentID      string     `json:"assignmentId"`
	CycleID           string     `json:"cycleId"`
	RaisedByID        string     `json:"raisedBy"`
	Reason            string     `json:"reason"`
	Details           string     `json:"details,omitempty"`
	Status            string     `json:"status"`
	SubmittedAt       time.Time  `json:"submittedAt"`
	ResolutionSummary string     `json:"resolutionSummary,omitempty"`
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
	ResolvedByID      string     `json:"resolvedBy,omitempty"`
}

// Ref carries an id that may optionally be expanded into the full entity.
type Ref[T any] struct {
	ID       string `json:"id"`
	Resolved *T     `json:"resolved,omitempty"`
}

func ResolvedRef[T any](id string, v T) Ref[T] {
	return Ref[T]{ID: id, Resolved: &v}
}

// AssignmentView is the reviewer-facing bundle: the assignment, its template
// expanded, and the latest record if one exists.
type AssignmentView struct {
	Assignment Assignment    `json:"assignment"`
	Template   Ref[Template] `json:"template"`
	Record     *Record       `json:"record,omitempty"`
}

type DepartmentProgress struct {
	NotStarted     int     `json:"notStarted"`
	InProgress     int     `json:"inProgress"`
	Submitted      int     `json:"submitted"`
	Published      int     `json:"published"`
	Acknowledged   int     `json:"acknowledged"`
	Total          int     `json:"total"`
	CompletionRate float64 `json:"completionRate"`
}

// PendingAck is one row of the acknowledgement reminder feed.
type PendingAck struct {
	AssignmentID string    `json:"assignmentId"`
	RecordID     string    `json:"recordId,omitempty"`
	EmployeeID   string    `json:"employeeId"`
	CycleID      string    `json:"cycleId"`
	AckDueDate   time.Time `json:"ackDueDate"`
}
