// Package response provides helpers for writing consistent JSON HTTP
// responses. Every handler returns JSON; centralizing the envelope
// keeps error shapes identical across endpoints so API consumers can
// rely on one format.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/student-management/internal/validation"
)

// Response is the standard envelope for acknowledgements and errors.
// Success responses carrying data (a student, a list) are written as
// bare JSON; everything else looks like:
//
//	{ "status": "ok",    "detail": "student deleted" }
//	{ "status": "error", "detail": "student not found" }
//	{ "status": "error", "detail": "...", "fields": {"age": "must be at least 16"} }
type Response struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`

	// Fields carries per-field validation messages when available.
	Fields map[string]string `json:"fields,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as a JSON body with the given HTTP status code.
// Headers must be set before WriteHeader, and WriteHeader before the
// body; WriteJSON enforces that order.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK builds a plain acknowledgement with a human-readable detail.
func OK(detail string) Response {
	return Response{Status: StatusOK, Detail: detail}
}

// GeneralError wraps any error into the standard envelope. Use it for
// everything except validation failures.
func GeneralError(err error) Response {
	return Response{Status: StatusError, Detail: err.Error()}
}

// ValidationError builds an envelope from per-field validation
// messages, keeping the joined form in detail for clients that only
// show a single line.
func ValidationError(errs validation.FieldErrors) Response {
	return Response{
		Status: StatusError,
		Detail: errs.Error(),
		Fields: errs,
	}
}
