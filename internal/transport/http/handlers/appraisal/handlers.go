package appraisalhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/auth"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *appraisal.Service
}

func NewHandler(service *appraisal.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTemplatesRead)).Get("/templates", h.handleListTemplates)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite)).Post("/templates", h.handleCreateTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesRead)).Get("/templates/{templateID}", h.handleGetTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite)).Put("/templates/{templateID}", h.handleUpdateTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite)).Delete("/templates/{templateID}", h.handleDeleteTemplate)

		r.With(middleware.RequirePermission(auth.PermCyclesRead)).Get("/cycles", h.handleListCycles)
		r.With(middleware.RequirePermission(auth.PermCyclesWrite)).Post("/cycles", h.handleCreateCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesRead)).Get("/cycles/{cycleID}", h.handleGetCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesWrite)).Put("/cycles/{cycleID}", h.handleUpdateCycle)
		r.With(middleware.RequirePermission(auth.PermCyclesWrite)).Delete("/cycles/{cycleID}", h.handleDeleteCycle)

		r.With(middleware.RequirePermission(auth.PermAssignmentsWrite)).Post("/assignments", h.handleCreateAssignments)
		r.With(middleware.RequirePermission(auth.PermAssignmentsRead)).Get("/assignments", h.handleListAssignments)
		r.With(middleware.RequirePermission(auth.PermAssignmentsRead)).Get("/assignments/{assignmentID}", h.handleGetAssignment)
		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/assignments/{assignmentID}/review", h.handleOpenAssignment)
		r.With(middleware.RequirePermission(auth.PermRecordsWrite)).Put("/assignments/{assignmentID}/record", h.handleSaveRecord)
		r.With(middleware.RequirePermission(auth.PermAssignmentsWrite)).Delete("/assignments/{assignmentID}", h.handleDeleteAssignment)

		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/records", h.handleListRecords)
		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Get("/records/{recordID}", h.handleViewRecord)
		r.With(middleware.RequirePermission(auth.PermRecordsWrite)).Post("/records/{recordID}/submit", h.handleSubmitRecord)
		r.With(middleware.RequirePermission(auth.PermRecordsPublish)).Post("/records/{recordID}/publish", h.handlePublishRecord)
		r.With(middleware.RequirePermission(auth.PermRecordsRead)).Post("/records/{recordID}/acknowledge", h.handleAcknowledgeRecord)
		r.With(middleware.RequirePermission(auth.PermDisputesWrite)).Post("/records/{recordID}/disputes", h.handleCreateDispute)

		r.With(middleware.RequirePermission(auth.PermDisputesRead)).Get("/disputes", h.handleListDisputes)
		r.With(middleware.RequirePermission(auth.PermDisputesRead)).Get("/disputes/{disputeID}", h.handleGetDispute)
		r.With(middleware.RequirePermission(auth.PermDisputesResolve)).Post("/disputes/{disputeID}/review", h.handleReviewDispute)
		r.With(middleware.RequirePermission(auth.PermDisputesResolve)).Post("/disputes/{disputeID}/resolve", h.handleResolveDispute)

		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/progress", h.handleDepartmentProgress)
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/pending-acknowledgements", h.handlePendingAcknowledgements)
	})
}

func caller(r *http.Request) (appraisal.Caller, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return appraisal.Caller{}, false
	}
	return appraisal.Caller{EmployeeID: user.EmployeeID, Role: user.Role}, true
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
}

func invalidPayload(w http.ResponseWriter, r *http.Request) {
	api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var tmpl appraisal.Template
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		invalidPayload(w, r)
		return
	}
	created, err := h.Service.CreateTemplate(r.Context(), c, &tmpl)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.Service.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tmpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var tmpl appraisal.Template
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		invalidPayload(w, r)
		return
	}
	tmpl.ID = chi.URLParam(r, "templateID")
	updated, err := h.Service.UpdateTemplate(r.Context(), c, &tmpl)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	if err := h.Service.DeleteTemplate(r.Context(), c, chi.URLParam(r, "templateID")); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.Service.ListCycles(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var cycle appraisal.Cycle
	if err := json.NewDecoder(r.Body).Decode(&cycle); err != nil {
		invalidPayload(w, r)
		return
	}
	created, err := h.Service.CreateCycle(r.Context(), c, &cycle)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.Service.GetCycle(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCycle(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var cycle appraisal.Cycle
	if err := json.NewDecoder(r.Body).Decode(&cycle); err != nil {
		invalidPayload(w, r)
		return
	}
	cycle.ID = chi.URLParam(r, "cycleID")
	updated, err := h.Service.UpdateCycle(r.Context(), c, &cycle)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	if err := h.Service.DeleteCycle(r.Context(), c, chi.URLParam(r, "cycleID")); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAssignments(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var payload struct {
		CycleID     string   `json:"cycleId"`
		TemplateID  string   `json:"templateId"`
		EmployeeIDs []string `json:"employeeIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		invalidPayload(w, r)
		return
	}
	created, err := h.Service.CreateAssignments(r.Context(), c, payload.CycleID, payload.EmployeeIDs, payload.TemplateID, c.EmployeeID)
	if err != nil {
		// Partial creation still reports what stuck before the failure.
		api.WriteJSON(w, api.DomainStatus(err), api.Envelope{
			Success:   false,
			Data:      created,
			Error:     &api.Error{Code: "assignment_create_failed", Message: err.Error()},
			RequestID: middleware.GetRequestID(r.Context()),
		})
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	assignments, err := h.Service.ListAssignments(r.Context(), appraisal.AssignmentFilter{
		CycleID:      q.Get("cycleId"),
		EmployeeID:   q.Get("employeeId"),
		ManagerID:    q.Get("managerId"),
		DepartmentID: q.Get("departmentId"),
	})
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, a, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOpenAssignment(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	view, err := h.Service.GetAssignmentWithTemplate(r.Context(), c, chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSaveRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var input appraisal.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		invalidPayload(w, r)
		return
	}
	rec, err := h.Service.CreateOrUpdateRecord(r.Context(), c, chi.URLParam(r, "assignmentID"), input)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	if err := h.Service.DeleteAssignment(r.Context(), c, chi.URLParam(r, "assignmentID")); err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	q := r.URL.Query()
	var (
		records []appraisal.Record
		err     error
	)
	switch {
	case q.Get("managerId") != "":
		records, err = h.Service.ListRecordsByManager(r.Context(), c, q.Get("managerId"))
	case q.Get("employeeId") != "":
		records, err = h.Service.ListRecordsByEmployee(r.Context(), c, q.Get("employeeId"))
	default:
		records, err = h.Service.ListRecordsByEmployee(r.Context(), c, c.EmployeeID)
	}
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleViewRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	rec, err := h.Service.ViewRecord(r.Context(), c, chi.URLParam(r, "recordID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	rec, err := h.Service.SubmitRecord(r.Context(), c, chi.URLParam(r, "recordID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePublishRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	rec, err := h.Service.PublishRecord(r.Context(), c, chi.URLParam(r, "recordID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAcknowledgeRecord(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var payload struct {
		Comment string `json:"comment"`
	}
	if r.Body != nil {
		// Acknowledgement comment is optional; an empty body is fine.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}
	rec, err := h.Service.AcknowledgeRecord(r.Context(), c, chi.URLParam(r, "recordID"), payload.Comment)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDispute(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var input appraisal.DisputeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		invalidPayload(w, r)
		return
	}
	d, err := h.Service.CreateDispute(r.Context(), c, chi.URLParam(r, "recordID"), input)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, d, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDisputes(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	q := r.URL.Query()
	disputes, err := h.Service.ListDisputes(r.Context(), c, appraisal.DisputeFilter{
		AppraisalID: q.Get("appraisalId"),
		CycleID:     q.Get("cycleId"),
		EmployeeID:  q.Get("employeeId"),
		Status:      q.Get("status"),
	})
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, disputes, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetDispute(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	d, err := h.Service.GetDispute(r.Context(), c, chi.URLParam(r, "disputeID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, d, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReviewDispute(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	d, err := h.Service.ReviewDispute(r.Context(), c, chi.URLParam(r, "disputeID"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, d, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleResolveDispute(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(r)
	if !ok {
		unauthorized(w, r)
		return
	}
	var input appraisal.ResolveDisputeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		invalidPayload(w, r)
		return
	}
	d, err := h.Service.ResolveDispute(r.Context(), c, chi.URLParam(r, "disputeID"), input)
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, d, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartmentProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.Service.GetProgressByDepartment(r.Context(), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, progress, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePendingAcknowledgements(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Service.ListPendingAcknowledgements(r.Context())
	if err != nil {
		api.FailDomain(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, pending, middleware.GetRequestID(r.Context()))
}
