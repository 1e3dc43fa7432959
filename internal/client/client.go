// Package client is the Go API client for the student management
// service. The terminal front end is built on it, and it works as a
// standalone library for anything else that talks to the API.
//
// Error taxonomy: network failures come back as *TransportError, non-2xx
// responses as *APIError with the decoded detail message. Create and
// Update additionally run the shared validation rules locally first, so
// obviously bad input fails fast without a round trip; the server runs
// the same rules again and remains authoritative.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/utils/response"
	"github.com/aanand-mishra/student-management/internal/validation"
)

// CourseCatalog is the fixed menu of offerings the front end presents.
// This restriction is client-side only; the server accepts any
// non-empty course.
var CourseCatalog = []string{
	"Computer Science",
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Economics",
	"History",
	"Literature",
}

// TransportError wraps a network-level failure: the request never
// produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the service, carrying the status
// code and the human-readable detail the server sent.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d: %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsConflict reports whether err is a 409 from the service, i.e. an
// email collision.
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

func hasStatus(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == status
}

// Client talks to one instance of the service. The zero value is not
// usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL, e.g.
// "http://localhost:8080". Timeouts are left to the caller's context;
// the client itself sets none.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Health checks GET /.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

// Create submits a new student and returns the stored record with its
// assigned id and creation timestamp.
func (c *Client) Create(ctx context.Context, in types.StudentInput) (types.Student, error) {
	in, err := validation.Check(in)
	if err != nil {
		return types.Student{}, err
	}

	var created types.Student
	if err := c.do(ctx, http.MethodPost, "/students/", in, &created); err != nil {
		return types.Student{}, err
	}
	return created, nil
}

// List fetches all students.
func (c *Client) List(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, http.MethodGet, "/students/", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Get fetches one student by id.
func (c *Client) Get(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/students/%d", id), nil, &student); err != nil {
		return types.Student{}, err
	}
	return student, nil
}

// Update replaces all mutable fields of the student with the given id.
func (c *Client) Update(ctx context.Context, id int64, in types.StudentInput) (types.Student, error) {
	in, err := validation.Check(in)
	if err != nil {
		return types.Student{}, err
	}

	var updated types.Student
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/students/%d", id), in, &updated); err != nil {
		return types.Student{}, err
	}
	return updated, nil
}

// Delete removes the student with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/students/%d", id), nil, nil)
}

// do issues one request. body is JSON-encoded when non-nil; on 2xx the
// response body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("client: %s: encode body: %w", op, err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: %s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: %s: decode response: %w", op, err)
		}
	}
	return nil
}

// decodeAPIError turns an error response into an *APIError. A body
// that does not match the envelope still produces a usable error with
// the status text as detail.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope response.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Detail != "" {
		apiErr.Detail = envelope.Detail
		apiErr.Fields = envelope.Fields
	} else {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
