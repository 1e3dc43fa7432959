package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/student-management/internal/types"
)

func student(id int64, name string) types.Student {
	return types.Student{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		Age:       20,
		Course:    "Computer Science",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.True(t, s.Loading)
	assert.Empty(t, s.Students)
	assert.Nil(t, s.Editing)
	assert.Empty(t, s.Err)
}

func TestFetchLifecycle(t *testing.T) {
	s := Initial()

	s = Reduce(s, FetchSucceeded{Students: []types.Student{student(1, "ada")}})
	assert.False(t, s.Loading)
	assert.Len(t, s.Students, 1)

	s = Reduce(s, FetchStarted{})
	assert.True(t, s.Loading)

	s = Reduce(s, FetchFailed{Err: "connection refused"})
	assert.False(t, s.Loading)
	assert.Equal(t, "connection refused", s.Err)
	// A failed refresh keeps the previously fetched list.
	assert.Len(t, s.Students, 1)
}

func TestCreateSucceededAppends(t *testing.T) {
	s := Reduce(State{}, CreateSucceeded{Student: student(1, "ada")})
	s = Reduce(s, CreateSucceeded{Student: student(2, "grace")})

	assert.Equal(t, []int64{1, 2}, ids(s))
}

func TestUpdateSucceededReplacesAndLeavesEditMode(t *testing.T) {
	editing := student(2, "grace")
	s := State{
		Students: []types.Student{student(1, "ada"), editing},
		Editing:  &editing,
	}

	changed := editing
	changed.Name = "grace hopper"
	s = Reduce(s, UpdateSucceeded{Student: changed})

	assert.Nil(t, s.Editing)
	assert.Equal(t, "grace hopper", s.Students[1].Name)
	assert.Equal(t, "ada", s.Students[0].Name)
}

func TestDeleteSucceededRemoves(t *testing.T) {
	s := State{Students: []types.Student{student(1, "ada"), student(2, "grace")}}

	s = Reduce(s, DeleteSucceeded{ID: 1})
	assert.Equal(t, []int64{2}, ids(s))

	// Deleting an id that is not present is a no-op.
	s = Reduce(s, DeleteSucceeded{ID: 99})
	assert.Equal(t, []int64{2}, ids(s))
}

func TestRequestFailedLeavesListUnchanged(t *testing.T) {
	before := State{Students: []types.Student{student(1, "ada")}}

	after := Reduce(before, RequestFailed{Err: "email already registered"})
	assert.Equal(t, before.Students, after.Students)
	assert.Equal(t, "email already registered", after.Err)
}

func TestEditStartAndCancel(t *testing.T) {
	target := student(1, "ada")
	s := Reduce(State{}, EditStarted{Student: target})
	assert.NotNil(t, s.Editing)
	assert.Equal(t, target, *s.Editing)

	s = Reduce(s, EditCancelled{})
	assert.Nil(t, s.Editing)
}

func TestErrorDismissed(t *testing.T) {
	s := Reduce(State{Err: "boom"}, ErrorDismissed{})
	assert.Empty(t, s.Err)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := State{Students: []types.Student{student(1, "ada")}}
	snapshot := before.Students[0]

	after := Reduce(before, UpdateSucceeded{Student: student(1, "renamed")})

	assert.Equal(t, snapshot, before.Students[0])
	assert.Equal(t, "renamed", after.Students[0].Name)
}

func ids(s State) []int64 {
	out := make([]int64, 0, len(s.Students))
	for _, st := range s.Students {
		out = append(out, st.ID)
	}
	return out
}
