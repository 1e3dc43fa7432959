// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using database/sql.
//
// SQLite keeps everything in a single file on disk. No network, no
// separate server process, and no setup beyond the driver, which the
// blank import below registers with database/sql as a side effect.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
)

// SQLite is the concrete implementation of storage.Storage. The
// embedded *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	db *sql.DB
}

// schema is idempotent and runs on every startup.
//
// The UNIQUE constraint on email is the only cross-row invariant in the
// system; the application never checks for duplicates itself, it lets
// this constraint arbitrate racing writes.
const schema = `
CREATE TABLE IF NOT EXISTS students (
	id         INTEGER   PRIMARY KEY AUTOINCREMENT,
	name       TEXT      NOT NULL,
	email      TEXT      NOT NULL UNIQUE,
	age        INTEGER   NOT NULL,
	course     TEXT      NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_students_name ON students (name);
`

// New opens the SQLite database at cfg.StoragePath, creates the
// students table if needed, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite supports a single writer. One pooled connection avoids
	// SQLITE_BUSY under write contention and keeps ":memory:" databases
	// from splitting into one database per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateStudent inserts a new row and returns the stored record with
// its generated id and creation timestamp.
func (s *SQLite) CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error) {
	createdAt := time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO students (name, email, age, course, created_at) VALUES (?, ?, ?, ?, ?)",
		in.Name, in.Email, in.Age, in.Course, createdAt,
	)
	if err != nil {
		return types.Student{}, translate(fmt.Errorf("CreateStudent: exec: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return types.Student{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Course:    in.Course,
		CreatedAt: createdAt,
	}, nil
}

// GetStudentByID fetches exactly one row by primary key.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, age, course, created_at FROM students WHERE id = ?",
		id,
	).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.Course,
		&student.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrStudentNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns rows in primary-key order. The result is an
// empty slice, never nil, so the JSON listing encodes as [] rather
// than null.
func (s *SQLite) GetStudents(ctx context.Context, skip, limit int) ([]types.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, age, course, created_at FROM students ORDER BY id LIMIT ? OFFSET ?",
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
			&student.Course,
			&student.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces all mutable fields of an existing row and
// returns the updated record as stored.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, in types.StudentInput) (types.Student, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE students SET name = ?, email = ?, age = ?, course = ? WHERE id = ?",
		in.Name, in.Email, in.Age, in.Course, id,
	)
	if err != nil {
		return types.Student{}, translate(fmt.Errorf("UpdateStudentByID: exec: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, storage.ErrStudentNotFound
	}

	// Re-read so the caller gets exactly what is stored, including the
	// immutable created_at.
	return s.GetStudentByID(ctx, id)
}

// DeleteStudentByID removes a row by primary key.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

// translate maps driver-level constraint violations onto the storage
// sentinels so callers never see raw sqlite3 errors. Email is the only
// unique column besides the primary key, so a unique violation always
// means a duplicate email.
func translate(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return storage.ErrEmailTaken
	}
	return err
}
