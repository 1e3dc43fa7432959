// Command studentctl is the interactive front end for the student
// management service: a list view plus add/edit/delete forms over the
// API client.
//
// All UI state lives in a state.State value; every server outcome and
// user gesture becomes an action folded through state.Reduce. The local
// list only changes after the server confirms a write, and every error
// is shown exactly once, then dismissed.
//
// Run it with:
//
//	go run ./cmd/studentctl --server=http://localhost:8080
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aanand-mishra/student-management/internal/client"
	"github.com/aanand-mishra/student-management/internal/client/state"
	"github.com/aanand-mishra/student-management/internal/types"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "Base URL of the student-api server")
	flag.Parse()

	app := &app{
		api:   client.New(*server),
		state: state.Initial(),
		in:    bufio.NewScanner(os.Stdin),
	}
	app.run()
}

type app struct {
	api   *client.Client
	state state.State
	in    *bufio.Scanner
}

func (a *app) dispatch(action state.Action) {
	a.state = state.Reduce(a.state, action)
}

func (a *app) run() {
	ctx := context.Background()

	a.fetch(ctx)

	for {
		a.render()

		line := a.prompt("command (l)ist (a)dd (e)dit <id> (d)elete <id> (q)uit")
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

		switch cmd {
		case "l", "list":
			a.fetch(ctx)
		case "a", "add":
			a.add(ctx)
		case "e", "edit":
			a.edit(ctx, arg)
		case "d", "delete":
			a.delete(ctx, arg)
		case "q", "quit", "":
			fmt.Println("bye")
			return
		default:
			a.dispatch(state.RequestFailed{Err: "unknown command: " + cmd})
		}
	}
}

// fetch reloads the list from the server.
func (a *app) fetch(ctx context.Context) {
	a.dispatch(state.FetchStarted{})

	students, err := a.api.List(ctx)
	if err != nil {
		a.dispatch(state.FetchFailed{Err: err.Error()})
		return
	}
	a.dispatch(state.FetchSucceeded{Students: students})
}

// add runs the create form and submits it.
func (a *app) add(ctx context.Context) {
	in, ok := a.form(types.StudentInput{})
	if !ok {
		return
	}

	created, err := a.api.Create(ctx, in)
	if err != nil {
		a.dispatch(state.RequestFailed{Err: err.Error()})
		return
	}

	a.dispatch(state.CreateSucceeded{Student: created})
	fmt.Printf("created student %d\n", created.ID)
}

// edit populates the form from an existing student and submits an
// update in its place.
func (a *app) edit(ctx context.Context, arg string) {
	target, ok := a.find(arg)
	if !ok {
		return
	}
	a.dispatch(state.EditStarted{Student: target})

	// The form is populated from the edit target held in state, so a
	// cancelled edit leaves no trace beyond the EditCancelled action.
	editing := a.state.Editing
	in, ok := a.form(types.StudentInput{
		Name:   editing.Name,
		Email:  editing.Email,
		Age:    editing.Age,
		Course: editing.Course,
	})
	if !ok {
		a.dispatch(state.EditCancelled{})
		fmt.Println("edit cancelled")
		return
	}

	updated, err := a.api.Update(ctx, target.ID, in)
	if err != nil {
		a.dispatch(state.RequestFailed{Err: err.Error()})
		return
	}

	a.dispatch(state.UpdateSucceeded{Student: updated})
	fmt.Printf("updated student %d\n", updated.ID)
}

// delete asks for explicit confirmation before issuing the request.
func (a *app) delete(ctx context.Context, arg string) {
	target, ok := a.find(arg)
	if !ok {
		return
	}

	answer := a.prompt(fmt.Sprintf("delete %q (%s)? [y/N]", target.Name, target.Email))
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		fmt.Println("delete cancelled")
		return
	}

	if err := a.api.Delete(ctx, target.ID); err != nil {
		a.dispatch(state.RequestFailed{Err: err.Error()})
		return
	}

	a.dispatch(state.DeleteSucceeded{ID: target.ID})
	fmt.Printf("deleted student %d\n", target.ID)
}

// form collects the four mutable fields. Defaults (shown in brackets)
// are kept when the user presses enter, which is how the edit form
// carries over current values. Reports false when the user declines to
// save.
func (a *app) form(defaults types.StudentInput) (types.StudentInput, bool) {
	in := types.StudentInput{
		Name:   a.promptDefault("name", defaults.Name),
		Email:  a.promptDefault("email", defaults.Email),
		Course: a.chooseCourse(defaults.Course),
	}

	ageRaw := a.promptDefault("age", strconv.Itoa(defaults.Age))
	// A bad number becomes 0 and is rejected by validation with the
	// rest of the fields, so the user sees all problems at once.
	in.Age, _ = strconv.Atoi(strings.TrimSpace(ageRaw))

	answer := a.prompt("save? [y/N]")
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return types.StudentInput{}, false
	}
	return in, true
}

// chooseCourse presents the fixed offerings menu.
func (a *app) chooseCourse(current string) string {
	fmt.Println("courses:")
	for i, course := range client.CourseCatalog {
		fmt.Printf("  %d. %s\n", i+1, course)
	}

	answer := a.promptDefault("course number", current)
	if answer == current {
		return current
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 1 || n > len(client.CourseCatalog) {
		// Out-of-menu input is left empty and caught by validation.
		return ""
	}
	return client.CourseCatalog[n-1]
}

// find resolves an id argument against the local list.
func (a *app) find(arg string) (types.Student, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		a.dispatch(state.RequestFailed{Err: "expected a numeric student id"})
		return types.Student{}, false
	}

	for _, st := range a.state.Students {
		if st.ID == id {
			return st, true
		}
	}
	a.dispatch(state.RequestFailed{Err: fmt.Sprintf("no student %d in the list; try (l)ist", id)})
	return types.Student{}, false
}

// render prints the list view and surfaces at most one error, which is
// dismissed as soon as it has been shown.
func (a *app) render() {
	fmt.Println()
	if a.state.Loading {
		fmt.Println("loading...")
	}
	if a.state.Err != "" {
		fmt.Printf("error: %s\n", a.state.Err)
		a.dispatch(state.ErrorDismissed{})
	}

	if len(a.state.Students) == 0 {
		fmt.Println("no students")
		return
	}

	fmt.Printf("%-5s %-20s %-28s %-4s %s\n", "ID", "NAME", "EMAIL", "AGE", "COURSE")
	for _, st := range a.state.Students {
		fmt.Printf("%-5d %-20s %-28s %-4d %s\n", st.ID, st.Name, st.Email, st.Age, st.Course)
	}
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s> ", label)
	if !a.in.Scan() {
		return ""
	}
	return a.in.Text()
}

func (a *app) promptDefault(label, def string) string {
	answer := strings.TrimSpace(a.prompt(fmt.Sprintf("%s [%s]", label, def)))
	if answer == "" {
		return def
	}
	return answer
}
