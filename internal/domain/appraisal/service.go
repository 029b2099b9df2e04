package appraisal

import (
	"time"

	"appraisal/internal/domain/auth"
)

// DefaultDisputeWindow bounds how long after publication an employee may
// contest the outcome.
const DefaultDisputeWindow = 7 * 24 * time.Hour

// Caller identifies who is invoking an operation. Services authorize against
// it directly; they never read transport state.
type Caller struct {
	EmployeeID string
	Role       string
}

func (c Caller) isHR() bool {
	return auth.IsHRTier(c.Role)
}

type Service struct {
	store         StoreAPI
	directory     DirectoryAPI
	now           func() time.Time
	disputeWindow time.Duration
}

func NewService(store StoreAPI, dir DirectoryAPI) *Service {
	return &Service{
		store:         store,
		directory:     dir,
		now:           time.Now,
		disputeWindow: DefaultDisputeWindow,
	}
}

// SetDisputeWindow overrides the publication contest window (ops knob; the
// default is the 7-day business rule).
func (s *Service) SetDisputeWindow(d time.Duration) {
	if d > 0 {
		s.disputeWindow = d
	}
}
