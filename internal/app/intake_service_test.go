package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/project-tracker/internal/domain"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// mockStore is a testify mock of ports.ProjectStore.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Subscribe(listener ports.Listener) ports.Subscription {
	args := m.Called(listener)
	return args.Get(0).(ports.Subscription)
}

func (m *mockStore) Unsubscribe(sub ports.Subscription) {
	m.Called(sub)
}

func (m *mockStore) AddProject(title, description string, people int) (project.Project, error) {
	args := m.Called(title, description, people)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *mockStore) MoveProject(id string, status project.Status) bool {
	return m.Called(id, status).Bool(0)
}

func (m *mockStore) Projects() []project.Project {
	return m.Called().Get(0).([]project.Project)
}

func validInput() project.Input {
	return project.Input{
		Title:       "Website Redesign",
		Description: "Rebuild marketing site",
		People:      3,
	}
}

func TestNewIntakeService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewIntakeService(&mockStore{}, project.DefaultRules(), nil)
	if svc.logger == nil {
		t.Fatal("NewIntakeService(nil logger) should create a no-op logger, got nil")
	}
}

func TestIntakeService_Submit(t *testing.T) {
	t.Parallel()

	t.Run("adds accepted project", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		svc := NewIntakeService(store, project.DefaultRules(), discardLogger())

		want := project.Project{ID: "p1", Title: "Website Redesign", Status: project.StatusActive}
		store.On("AddProject", "Website Redesign", "Rebuild marketing site", 3).Return(want, nil).Once()

		got, err := svc.Submit(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, want, got)
		store.AssertExpectations(t)
	})

	t.Run("trims title and description", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		svc := NewIntakeService(store, project.DefaultRules(), discardLogger())

		store.On("AddProject", "API Migration", "Move to new backend", 5).
			Return(project.Project{ID: "p2"}, nil).Once()

		_, err := svc.Submit(context.Background(), project.Input{
			Title:       "  API Migration ",
			Description: "Move to new backend  ",
			People:      5,
		})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("padding does not count toward minimum lengths", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		svc := NewIntakeService(store, project.DefaultRules(), discardLogger())

		_, err := svc.Submit(context.Background(), project.Input{
			Title:       "  X  ",
			Description: "   abcd   ",
			People:      1,
		})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "title")
		assert.Contains(t, verr.Fields, "description")
		store.AssertNotCalled(t, "AddProject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejected input never reaches the store", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		svc := NewIntakeService(store, project.DefaultRules(), discardLogger())

		in := validInput()
		in.People = 0

		_, err := svc.Submit(context.Background(), in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		store.AssertNotCalled(t, "AddProject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store conflict is returned", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		svc := NewIntakeService(store, project.DefaultRules(), discardLogger())

		store.On("AddProject", mock.Anything, mock.Anything, mock.Anything).
			Return(project.Project{}, domain.ErrConflict).Once()

		_, err := svc.Submit(context.Background(), validInput())
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("configured rules apply", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		rules := project.DefaultRules()
		rules.PeopleMax = 4
		svc := NewIntakeService(store, rules, discardLogger())

		in := validInput()
		in.People = 5

		_, err := svc.Submit(context.Background(), in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "people")
	})
}

func TestIntakeService_WithRealStore(t *testing.T) {
	t.Parallel()

	store := NewProjectStore()
	svc := NewIntakeService(store, project.DefaultRules(), discardLogger())

	_, err := svc.Submit(context.Background(), project.Input{Title: "X", Description: "Too short title", People: 1})
	require.Error(t, err)
	assert.Zero(t, store.Len())

	p, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, project.StatusActive, p.Status)
}
