// Package validation normalizes and validates student input.
//
// The same rules run twice: the client calls Check before submitting a
// form so mistakes surface without a round trip, and the server calls
// it again on every write because the client copy is advisory only.
// Either the input comes back normalized with no error, or it comes
// back untouched with a full set of field errors; the two never mix.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-management/internal/types"
)

// validate is shared across requests. A validator.Validate caches
// parsed struct tags, so building one per call wastes work.
var validate = validator.New()

// FieldErrors maps a lowercase field name to a human-readable message.
// It satisfies the error interface so handlers can pass it around like
// any other error and still unwrap the per-field detail.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for field, msg := range fe {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs) // map order is random; keep messages stable
	return strings.Join(msgs, ", ")
}

// Normalize returns a copy of in with name, email, and course trimmed
// and the email lowercased. Emails are case-normalized on write so the
// store's uniqueness constraint is effectively case-insensitive.
func Normalize(in types.StudentInput) types.StudentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Course = strings.TrimSpace(in.Course)
	return in
}

// Check normalizes in and validates the result. On success it returns
// the normalized input and a nil error. On failure it returns the
// original input unchanged and a FieldErrors describing every failing
// field.
func Check(in types.StudentInput) (types.StudentInput, error) {
	normalized := Normalize(in)

	err := validate.Struct(normalized)
	if err == nil {
		return normalized, nil
	}

	validateErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input,
		// which would be a programming error here.
		return in, err
	}

	fieldErrs := make(FieldErrors, len(validateErrs))
	for _, e := range validateErrs {
		fieldErrs[strings.ToLower(e.Field())] = message(e)
	}
	return in, fieldErrs
}

// message converts a single validator.FieldError into plain English.
func message(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	default:
		return "is invalid"
	}
}
