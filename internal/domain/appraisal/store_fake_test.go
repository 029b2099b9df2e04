package appraisal

import (
	"context"
	"fmt"
	"time"

	"appraisal/internal/domain/directory"
)

// fakeStore is an in-memory StoreAPI with the same conditional-write
// semantics as the Postgres store.
type fakeStore struct {
	seq         int
	templates   map[string]*Template
	cycles      map[string]*Cycle
	assignments map[string]*Assignment
	records     map[string]*Record
	disputes    map[string]*Dispute
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		templates:   make(map[string]*Template),
		cycles:      make(map[string]*Cycle),
		assignments: make(map[string]*Assignment),
		records:     make(map[string]*Record),
		disputes:    make(map[string]*Dispute),
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) CreateTemplate(_ context.Context, t *Template) (string, error) {
	id := f.nextID("tpl")
	cp := *t
	cp.ID = id
	f.templates[id] = &cp
	return id, nil
}

func (f *fakeStore) UpdateTemplate(_ context.Context, t *Template) (bool, error) {
	if _, ok := f.templates[t.ID]; !ok {
		return false, nil
	}
	cp := *t
	f.templates[t.ID] = &cp
	return true, nil
}

func (f *fakeStore) GetTemplate(_ context.Context, id string) (*Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ListTemplates(_ context.Context, activeOnly bool) ([]Template, error) {
	var out []Template
	for _, t := range f.templates {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, id string) (bool, error) {
	if _, ok := f.templates[id]; !ok {
		return false, nil
	}
	delete(f.templates, id)
	return true, nil
}

func (f *fakeStore) CreateCycle(_ context.Context, c *Cycle) (string, error) {
	id := f.nextID("cyc")
	cp := *c
	cp.ID = id
	f.cycles[id] = &cp
	return id, nil
}

func (f *fakeStore) UpdateCycle(_ context.Context, c *Cycle) (bool, error) {
	if _, ok := f.cycles[c.ID]; !ok {
		return false, nil
	}
	cp := *c
	f.cycles[c.ID] = &cp
	return true, nil
}

func (f *fakeStore) GetCycle(_ context.Context, id string) (*Cycle, error) {
	c, ok := f.cycles[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ListCycles(_ context.Context) ([]Cycle, error) {
	var out []Cycle
	for _, c := range f.cycles {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) DeleteCycle(_ context.Context, id string) (bool, error) {
	if _, ok := f.cycles[id]; !ok {
		return false, nil
	}
	delete(f.cycles, id)
	return true, nil
}

func (f *fakeStore) CountAssignmentsByCycle(_ context.Context, cycleID string) (int, error) {
	count := 0
	for _, a := range f.assignments {
		if a.CycleID == cycleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateAssignment(_ context.Context, a *Assignment) (string, error) {
	id := f.nextID("asg")
	cp := *a
	cp.ID = id
	f.assignments[id] = &cp
	return id, nil
}

func (f *fakeStore) GetAssignment(_ context.Context, id string) (*Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) ListAssignments(_ context.Context, filter AssignmentFilter) ([]Assignment, error) {
	var out []Assignment
	for _, a := range f.assignments {
		if filter.CycleID != "" && a.CycleID != filter.CycleID {
			continue
		}
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ManagerID != "" && a.ManagerID != filter.ManagerID {
			continue
		}
		if filter.DepartmentID != "" && a.DepartmentID != filter.DepartmentID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) DeleteAssignment(_ context.Context, id string) (bool, error) {
	if _, ok := f.assignments[id]; !ok {
		return false, nil
	}
	delete(f.assignments, id)
	return true, nil
}

func (f *fakeStore) CountRecordsByAssignment(_ context.Context, assignmentID string) (int, error) {
	count := 0
	for _, r := range f.records {
		if r.AssignmentID == assignmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) MarkAssignmentInProgress(_ context.Context, id string) (bool, error) {
	a, ok := f.assignments[id]
	if !ok || a.Status != AssignmentStatusNotStarted {
		return false, nil
	}
	a.Status = AssignmentStatusInProgress
	return true, nil
}

func (f *fakeStore) MarkAssignmentSubmitted(_ context.Context, id string, at time.Time) (bool, error) {
	a, ok := f.assignments[id]
	if !ok || (a.Status != AssignmentStatusNotStarted && a.Status != AssignmentStatusInProgress) {
		return false, nil
	}
	a.Status = AssignmentStatusSubmitted
	a.SubmittedAt = &at
	return true, nil
}

func (f *fakeStore) MarkAssignmentPublished(_ context.Context, id string, at time.Time) (bool, error) {
	a, ok := f.assignments[id]
	if !ok || a.Status != AssignmentStatusSubmitted {
		return false, nil
	}
	a.Status = AssignmentStatusPublished
	a.PublishedAt = &at
	return true, nil
}

func (f *fakeStore) MarkAssignmentAcknowledged(_ context.Context, id string) (bool, error) {
	a, ok := f.assignments[id]
	if !ok || a.Status != AssignmentStatusPublished {
		return false, nil
	}
	a.Status = AssignmentStatusAcknowledged
	return true, nil
}

func (f *fakeStore) SetAssignmentLatestRecord(_ context.Context, id, recordID string) error {
	if a, ok := f.assignments[id]; ok {
		a.LatestRecordID = recordID
	}
	return nil
}

func (f *fakeStore) CreateRecord(_ context.Context, r *Record) (string, error) {
	id := f.nextID("rec")
	cp := *r
	cp.ID = id
	f.records[id] = &cp
	return id, nil
}

func (f *fakeStore) GetRecord(_ context.Context, id string) (*Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) GetRecordByAssignment(_ context.Context, assignmentID string) (*Record, error) {
	for _, r := range f.records {
		if r.AssignmentID == assignmentID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListRecordsByEmployee(_ context.Context, employeeID string) ([]Record, error) {
	var out []Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecordsByManager(_ context.Context, managerID string) ([]Record, error) {
	var out []Record
	for _, r := range f.records {
		if r.ManagerID == managerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateRecordDraft(_ context.Context, r *Record) (bool, error) {
	cur, ok := f.records[r.ID]
	if !ok || cur.Status != RecordStatusDraft {
		return false, nil
	}
	cur.Ratings = r.Ratings
	cur.TotalScore = r.TotalScore
	cur.OverallRatingLabel = r.OverallRatingLabel
	cur.ManagerSummary = r.ManagerSummary
	cur.Strengths = r.Strengths
	cur.ImprovementAreas = r.ImprovementAreas
	return true, nil
}

func (f *fakeStore) MarkRecordSubmitted(_ context.Context, id string, at time.Time) (bool, error) {
	r, ok := f.records[id]
	if !ok || r.Status != RecordStatusDraft {
		return false, nil
	}
	r.Status = RecordStatusManagerSubmitted
	r.ManagerSubmittedAt = &at
	return true, nil
}

func (f *fakeStore) MarkRecordPublished(_ context.Context, id, publishedByID string, at time.Time) (bool, error) {
	r, ok := f.records[id]
	if !ok || r.Status != RecordStatusManagerSubmitted {
		return false, nil
	}
	r.Status = RecordStatusHRPublished
	r.HRPublishedAt = &at
	r.PublishedByID = publishedByID
	return true, nil
}

func (f *fakeStore) StampRecordViewed(_ context.Context, id string, at time.Time) error {
	if r, ok := f.records[id]; ok && r.EmployeeViewedAt == nil {
		r.EmployeeViewedAt = &at
	}
	return nil
}

func (f *fakeStore) MarkRecordAcknowledged(_ context.Context, id, comment string, at time.Time) (bool, error) {
	r, ok := f.records[id]
	if !ok || r.Status != RecordStatusHRPublished || r.EmployeeAckAt != nil {
		return false, nil
	}
	r.EmployeeAckAt = &at
	r.EmployeeAckComment = comment
	return true, nil
}

func (f *fakeStore) OverrideRecordOutcome(_ context.Context, id string, score *float64, label string) error {
	if r, ok := f.records[id]; ok {
		r.TotalScore = score
		r.OverallRatingLabel = label
	}
	return nil
}

func (f *fakeStore) CreateDisputeIfNoneActive(_ context.Context, d *Dispute) (string, bool, error) {
	for _, existing := range f.disputes {
		if existing.AppraisalID == d.AppraisalID &&
			(existing.Status == DisputeStatusOpen || existing.Status == DisputeStatusUnderReview) {
			return "", false, nil
		}
	}
	id := f.nextID("dsp")
	cp := *d
	cp.ID = id
	f.disputes[id] = &cp
	return id, true, nil
}

func (f *fakeStore) GetDispute(_ context.Context, id string) (*Dispute, error) {
	d, ok := f.disputes[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeStore) ListDisputes(_ context.Context, filter DisputeFilter) ([]Dispute, error) {
	var out []Dispute
	for _, d := range f.disputes {
		if filter.AppraisalID != "" && d.AppraisalID != filter.AppraisalID {
			continue
		}
		if filter.CycleID != "" && d.CycleID != filter.CycleID {
			continue
		}
		if filter.EmployeeID != "" && d.RaisedByID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeStore) MarkDisputeUnderReview(_ context.Context, id string) (bool, error) {
	d, ok := f.disputes[id]
	if !ok || d.Status != DisputeStatusOpen {
		return false, nil
	}
	d.Status = DisputeStatusUnderReview
	return true, nil
}

func (f *fakeStore) ResolveDisputeIfActive(_ context.Context, id, status, summary, resolvedByID string, at time.Time) (bool, error) {
	d, ok := f.disputes[id]
	if !ok || (d.Status != DisputeStatusOpen && d.Status != DisputeStatusUnderReview) {
		return false, nil
	}
	d.Status = status
	d.ResolutionSummary = summary
	d.ResolvedByID = resolvedByID
	d.ResolvedAt = &at
	return true, nil
}

func (f *fakeStore) DepartmentStatusCounts(_ context.Context, departmentID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range f.assignments {
		if a.DepartmentID == departmentID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (f *fakeStore) ListPendingAcknowledgements(_ context.Context, now time.Time) ([]PendingAck, error) {
	var out []PendingAck
	for _, a := range f.assignments {
		if a.Status != AssignmentStatusPublished {
			continue
		}
		c, ok := f.cycles[a.CycleID]
		if !ok || c.EmployeeAckDueDate == nil || !c.EmployeeAckDueDate.Before(now) {
			continue
		}
		out = append(out, PendingAck{
			AssignmentID: a.ID,
			RecordID:     a.LatestRecordID,
			EmployeeID:   a.EmployeeID,
			CycleID:      a.CycleID,
			AckDueDate:   *c.EmployeeAckDueDate,
		})
	}
	return out, nil
}

// fakeDirectory is an in-memory DirectoryAPI.
type fakeDirectory struct {
	employees map[string]*directory.Employee
	summaries map[string]directory.Appraisal
	histories map[string][]string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		employees: make(map[string]*directory.Employee),
		summaries: make(map[string]directory.Appraisal),
		histories: make(map[string][]string),
	}
}

func (f *fakeDirectory) GetEmployee(_ context.Context, employeeID string) (*directory.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return nil, directory.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeDirectory) FindEmployeeByPosition(_ context.Context, positionID string) (*directory.Employee, error) {
	for _, e := range f.employees {
		if e.PositionID == positionID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, directory.ErrEmployeeNotFound
}

func (f *fakeDirectory) UpdateAppraisalSummary(_ context.Context, employeeID string, summary directory.Appraisal, recordID string) error {
	if _, ok := f.employees[employeeID]; !ok {
		return directory.ErrEmployeeNotFound
	}
	f.summaries[employeeID] = summary
	for _, id := range f.histories[employeeID] {
		if id == recordID {
			return nil
		}
	}
	f.histories[employeeID] = append(f.histories[employeeID], recordID)
	return nil
}

var _ StoreAPI = (*fakeStore)(nil)
var _ DirectoryAPI = (*fakeDirectory)(nil)
