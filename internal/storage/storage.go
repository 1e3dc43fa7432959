// Package storage defines the Storage interface, the contract any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete driver.
// Swapping databases means implementing the interface for the new
// backend and changing one line in main; unit tests pass a fake.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-management/internal/types"
)

// Sentinel errors the HTTP layer translates into status codes. Concrete
// implementations must wrap or return these so callers can use
// errors.Is instead of matching driver-specific error types.
var (
	// ErrStudentNotFound means the operation addressed an id with no row.
	ErrStudentNotFound = errors.New("storage: student not found")

	// ErrEmailTaken means a write would violate the unique constraint
	// on email. The constraint lives in the store, not the application,
	// so two racing writes still cannot leave duplicates behind.
	ErrEmailTaken = errors.New("storage: email already registered")
)

// Storage is the database contract. Every method runs exactly one
// statement against the students table; mutating methods perform
// exactly one durable write.
type Storage interface {
	// CreateStudent inserts a new student and returns the stored record
	// with its assigned id and creation timestamp.
	CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error)

	// GetStudentByID fetches a single student by primary key.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns students in primary-key order, skipping the
	// first skip rows and returning at most limit rows. It returns an
	// empty slice, not nil, when nothing matches.
	GetStudents(ctx context.Context, skip, limit int) ([]types.Student, error)

	// UpdateStudentByID replaces all mutable fields of an existing
	// student and returns the updated record.
	UpdateStudentByID(ctx context.Context, id int64, in types.StudentInput) (types.Student, error)

	// DeleteStudentByID removes a student permanently.
	DeleteStudentByID(ctx context.Context, id int64) error
}
