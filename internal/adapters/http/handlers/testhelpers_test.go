package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/project-tracker/internal/app"
	"github.com/jsamuelsen11/project-tracker/internal/app/board"
	"github.com/jsamuelsen11/project-tracker/internal/app/eventloop"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// fixture is a fully wired core: one store, its board, and the loop every
// handler runs on.
type fixture struct {
	loop  *eventloop.Loop
	store *app.ProjectStore
	board *board.Board
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := app.NewProjectStore()
	return &fixture{
		loop:  eventloop.New(),
		store: store,
		board: board.New(store, nil, nil),
	}
}

func (f *fixture) add(t *testing.T, title string) project.Project {
	t.Helper()
	p, err := f.store.AddProject(title, "Rebuild marketing site", 3)
	if err != nil {
		t.Fatalf("AddProject() error = %v", err)
	}
	return p
}

// mockHealthRegistry is a testify mock of ports.HealthRegistry.
type mockHealthRegistry struct {
	mock.Mock
}

var _ ports.HealthRegistry = (*mockHealthRegistry)(nil)

func newMockHealthRegistry(t *testing.T) *mockHealthRegistry {
	t.Helper()
	m := &mockHealthRegistry{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockHealthRegistry) Register(checker ports.HealthChecker) {
	m.Called(checker)
}

func (m *mockHealthRegistry) CheckAll(ctx context.Context) map[string]error {
	args := m.Called(ctx)
	results, _ := args.Get(0).(map[string]error)
	return results
}

// mockIntake is a testify mock of ports.IntakeService.
type mockIntake struct {
	mock.Mock
}

var _ ports.IntakeService = (*mockIntake)(nil)

func (m *mockIntake) Submit(ctx context.Context, in project.Input) (project.Project, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(project.Project)
	return p, args.Error(1)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
