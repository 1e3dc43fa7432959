// Package state models the client application's UI state as an
// immutable value transitioned by discrete actions.
//
// Reduce is a pure function: it never mutates its input and never
// performs I/O. The front end issues requests, turns the outcomes into
// actions, and folds them through Reduce, so every transition can be
// tested in isolation without a server.
package state

import "github.com/aanand-mishra/student-management/internal/types"

// State is the complete client-side state: the fetched list, the
// student currently being edited (nil when the form is in create mode),
// a loading flag for the initial fetch, and at most one visible error
// message.
type State struct {
	Students []types.Student
	Editing  *types.Student
	Loading  bool
	Err      string
}

// Initial returns the state before anything has loaded: empty list,
// loading set, which is what triggers the first fetch.
func Initial() State {
	return State{Loading: true}
}

// Action marks the types Reduce accepts. Actions describe what
// happened, not what should change; the change lives in Reduce.
type Action interface{ isAction() }

// FetchStarted begins (or restarts) loading the list.
type FetchStarted struct{}

// FetchSucceeded replaces the list with the server's copy.
type FetchSucceeded struct{ Students []types.Student }

// FetchFailed records a failed list fetch.
type FetchFailed struct{ Err string }

// CreateSucceeded appends a server-confirmed student. The list is only
// ever updated after confirmation; there is no optimistic UI.
type CreateSucceeded struct{ Student types.Student }

// UpdateSucceeded replaces the matching student and leaves edit mode.
type UpdateSucceeded struct{ Student types.Student }

// DeleteSucceeded removes the student with the given id.
type DeleteSucceeded struct{ ID int64 }

// RequestFailed records any failed create/update/delete; local state is
// otherwise unchanged.
type RequestFailed struct{ Err string }

// EditStarted populates the form from an existing student.
type EditStarted struct{ Student types.Student }

// EditCancelled clears the edit target and resets the form.
type EditCancelled struct{}

// ErrorDismissed clears the visible error message.
type ErrorDismissed struct{}

func (FetchStarted) isAction()    {}
func (FetchSucceeded) isAction()  {}
func (FetchFailed) isAction()     {}
func (CreateSucceeded) isAction() {}
func (UpdateSucceeded) isAction() {}
func (DeleteSucceeded) isAction() {}
func (RequestFailed) isAction()   {}
func (EditStarted) isAction()     {}
func (EditCancelled) isAction()   {}
func (ErrorDismissed) isAction()  {}

// Reduce returns the state after applying a to s. Unknown actions
// return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FetchStarted:
		s.Loading = true
		s.Err = ""

	case FetchSucceeded:
		s.Students = a.Students
		s.Loading = false
		s.Err = ""

	case FetchFailed:
		s.Loading = false
		s.Err = a.Err

	case CreateSucceeded:
		s.Students = append(copyStudents(s.Students), a.Student)
		s.Err = ""

	case UpdateSucceeded:
		students := copyStudents(s.Students)
		for i := range students {
			if students[i].ID == a.Student.ID {
				students[i] = a.Student
			}
		}
		s.Students = students
		s.Editing = nil
		s.Err = ""

	case DeleteSucceeded:
		students := make([]types.Student, 0, len(s.Students))
		for _, st := range s.Students {
			if st.ID != a.ID {
				students = append(students, st)
			}
		}
		s.Students = students
		s.Err = ""

	case RequestFailed:
		s.Err = a.Err

	case EditStarted:
		editing := a.Student
		s.Editing = &editing
		s.Err = ""

	case EditCancelled:
		s.Editing = nil

	case ErrorDismissed:
		s.Err = ""
	}

	return s
}

// copyStudents clones the backing array so the previous state stays
// valid after the new one is modified.
func copyStudents(in []types.Student) []types.Student {
	out := make([]types.Student, len(in))
	copy(out, in)
	return out
}
