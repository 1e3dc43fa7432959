package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/http/router"
	"github.com/aanand-mishra/student-management/internal/storage/sqlite"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/validation"
)

// newTestServer runs the real service (router + in-memory SQLite) so
// client tests exercise the same wire format production sees. hits
// counts requests that actually reached the server.
func newTestServer(t *testing.T) (*Client, *atomic.Int64) {
	t.Helper()

	store, err := sqlite.New(&config.Config{StoragePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var hits atomic.Int64
	handler := router.New(store, []string{"*"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	return New(server.URL), &hits
}

func validInput() types.StudentInput {
	return types.StudentInput{
		Name:   "John Doe",
		Email:  "JOHN@Example.com",
		Age:    20,
		Course: "Computer Science",
	}
}

func TestHealth(t *testing.T) {
	c, _ := newTestServer(t)
	assert.NoError(t, c.Health(context.Background()))
}

func TestCreateListGetRoundTrip(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	created, err := c.Create(ctx, validInput())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "john@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	students, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, created.ID, students[0].ID)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
}

func TestCreateConflict(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	_, err := c.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "Jane Doe"
	_, err = c.Create(ctx, in)

	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "email already registered", apiErr.Detail)
}

func TestClientSideValidationSkipsNetwork(t *testing.T) {
	c, hits := newTestServer(t)

	in := validInput()
	in.Age = 15
	_, err := c.Create(context.Background(), in)

	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "age")
	assert.Zero(t, hits.Load(), "invalid input must fail before the request is sent")
}

func TestUpdateAndDelete(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	created, err := c.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "John Q. Doe"
	in.Email = "john.q@example.com"
	updated, err := c.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "John Q. Doe", updated.Name)
	assert.Equal(t, created.ID, updated.ID)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestNotFoundTaxonomy(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	_, err := c.Get(ctx, 42)
	assert.True(t, IsNotFound(err))

	err = c.Delete(ctx, 42)
	assert.True(t, IsNotFound(err))

	_, err = c.Update(ctx, 42, validInput())
	assert.True(t, IsNotFound(err))
}

func TestTransportError(t *testing.T) {
	// A server that is already gone: the request never produces a
	// response, which is the TransportError case, not an APIError.
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(url)
	_, err := c.List(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.False(t, IsNotFound(err))
}
