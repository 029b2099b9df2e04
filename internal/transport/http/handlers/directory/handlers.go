package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Store *directory.Store
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/directory", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/employees", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite)).Post("/employees", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/employees/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/departments", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite)).Post("/departments", h.handleCreateDepartment)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/positions", h.handleListPositions)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite)).Post("/positions", h.handleCreatePosition)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context(), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		directory.Employee
		Password string `json:"password,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "first name, last name and email are required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Role == "" {
		payload.Role = auth.RoleEmployee
	}
	if payload.Status == "" {
		payload.Status = "active"
	}

	hash := ""
	if payload.Password != "" {
		var err error
		hash, err = auth.HashPassword(payload.Password)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
			return
		}
	}

	id, err := h.Store.CreateEmployee(r.Context(), payload.Employee, hash)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	employee, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to load created employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		ParentID string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "department name is required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreateDepartment(r.Context(), payload.Name, payload.ParentID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Store.ListPositions(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_list_failed", "failed to list positions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title        string `json:"title"`
		DepartmentID string `json:"departmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "position title is required", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.CreatePosition(r.Context(), payload.Title, payload.DepartmentID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "position_create_failed", "failed to create position", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}
