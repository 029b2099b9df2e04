package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"appraisal/internal/domain/appraisal"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

// DomainStatus maps the appraisal sentinel errors onto HTTP statuses.
func DomainStatus(err error) int {
	switch {
	case errors.Is(err, appraisal.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, appraisal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, appraisal.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, appraisal.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var domainCodes = map[int]string{
	http.StatusBadRequest: "validation_failed",
	http.StatusNotFound:   "not_found",
	http.StatusForbidden:  "forbidden",
	http.StatusConflict:   "conflict",
}

// FailDomain writes a domain error response. Unrecognized errors become a
// 500 with the detail kept out of the response body.
func FailDomain(w http.ResponseWriter, err error, requestID string) {
	status := DomainStatus(err)
	code, ok := domainCodes[status]
	if !ok {
		slog.Error("unhandled domain error", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}
	Fail(w, status, code, err.Error(), requestID)
}
