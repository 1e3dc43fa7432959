// Package types holds the shared data structures used across the
// application. Handlers, storage, validation, and the client all import
// types without depending on each other, which keeps the import graph
// acyclic.
package types

import "time"

// Student is a stored student record as returned by the API.
//
// ID and CreatedAt are system-assigned on creation and immutable
// afterwards. Email is always stored trimmed and lowercased.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Course    string    `json:"course"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentInput carries the mutable fields of a student, used for both
// create and update payloads (an update replaces all four fields).
//
// The validate tags are checked by go-playground/validator via the
// validation package. Inputs must be normalized (trimmed, email
// lowercased) before validation so the min=2 rule applies to the
// trimmed name, not the padded one.
type StudentInput struct {
	Name   string `json:"name"   validate:"required,min=2"`
	Email  string `json:"email"  validate:"required,email"`
	Age    int    `json:"age"    validate:"required,gte=16,lte=100"`
	Course string `json:"course" validate:"required"`
}
