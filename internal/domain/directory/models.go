package directory

import "time"

type Employee struct {
	ID                   string     `json:"id"`
	FirstName            string     `json:"firstName"`
	LastName             string     `json:"lastName"`
	Email                string     `json:"email"`
	DepartmentID         string     `json:"primaryDepartmentId,omitempty"`
	PositionID           string     `json:"primaryPositionId,omitempty"`
	SupervisorPositionID string     `json:"supervisorPositionId,omitempty"`
	Role                 string     `json:"role"`
	Status               string     `json:"status"`
	LatestAppraisal      *Appraisal `json:"latestAppraisal,omitempty"`
	AppraisalHistory     []string   `json:"appraisalHistory,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// Appraisal is the summary block the appraisal engine writes back onto an
// employee profile at publish time (and again on dispute adjustment).
type Appraisal struct {
	Score      *float64 `json:"score,omitempty"`
	Label      string   `json:"label,omitempty"`
	ScaleType  string   `json:"scaleType,omitempty"`
	CycleID    string   `json:"cycleId,omitempty"`
	TemplateID string   `json:"templateId,omitempty"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Position struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	DepartmentID string    `json:"departmentId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
