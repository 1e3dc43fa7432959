// Package student contains the HTTP handlers for the student resource.
//
// Handlers use the factory pattern: each exported function accepts the
// storage dependency and returns an http.HandlerFunc that closes over
// it. The factory runs once at route registration; the returned handler
// runs on every request. This keeps handler signatures compatible with
// the router while still allowing dependency injection, and tests can
// pass any storage.Storage fake.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/utils/response"
	"github.com/aanand-mishra/student-management/internal/validation"
)

// defaultListLimit matches the listing default when the client sends no
// limit query parameter.
const defaultListLimit = 100

// Create handles POST /students/.
//
// The body is decoded, normalized, and validated before anything
// touches the store. A duplicate email is reported as 409; the
// uniqueness check itself happens inside the store's constraint layer,
// never here, so racing creates cannot both succeed.
func Create(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		in, err := validation.Check(in)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		created, err := store.CreateStudent(r.Context(), in)
		if err != nil {
			writeStoreError(w, "create student", err)
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusOK, created)
	}
}

// List handles GET /students/.
//
// skip and limit are optional query parameters for offset pagination;
// they default to 0 and 100. The response body is always a JSON array,
// [] when the table is empty.
func List(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, ok := queryInt(w, r, "skip", 0)
		if !ok {
			return
		}
		limit, ok := queryInt(w, r, "limit", defaultListLimit)
		if !ok {
			return
		}

		students, err := store.GetStudents(r.Context(), skip, limit)
		if err != nil {
			writeStoreError(w, "list students", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// GetByID handles GET /students/{id}.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		student, err := store.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, "get student", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Update handles PUT /students/{id}. It replaces all mutable fields;
// there are no partial updates.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		in, err := validation.Check(in)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		updated, err := store.UpdateStudentByID(r.Context(), id, in)
		if err != nil {
			writeStoreError(w, "update student", err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /students/{id}. Deletion is destructive and
// immediate; there is no soft delete.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := store.DeleteStudentByID(r.Context(), id); err != nil {
			writeStoreError(w, "delete student", err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.OK("student deleted"))
	}
}

// decodeInput reads the JSON body into a StudentInput. On failure it
// writes a 400 and reports false.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.StudentInput, bool) {
	var in types.StudentInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return in, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is not valid JSON")))
		return in, false
	}

	return in, true
}

// pathID parses the {id} route parameter. On failure it writes a 400
// and reports false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New(name+" must be a non-negative integer")))
		return 0, false
	}
	return v, true
}

func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(fieldErrs))
		return
	}
	response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
}

// writeStoreError maps storage sentinels onto status codes. Anything
// unrecognized is logged and reported as a generic 500 so raw driver
// errors never reach the client.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrStudentNotFound):
		response.WriteJSON(w, http.StatusNotFound,
			response.GeneralError(errors.New("student not found")))
	case errors.Is(err, storage.ErrEmailTaken):
		response.WriteJSON(w, http.StatusConflict,
			response.GeneralError(errors.New("email already registered")))
	default:
		slog.Error("storage error", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError,
			response.GeneralError(errors.New("internal server error")))
	}
}
