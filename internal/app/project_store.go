// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and the ports the adapters call into.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/project-tracker/internal/domain"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// Compile-time check that ProjectStore implements ports.ProjectStore.
var _ ports.ProjectStore = (*ProjectStore)(nil)

// defaultIDAttempts bounds id regeneration when the generator collides.
const defaultIDAttempts = 8

// ProjectStore is the observable project container. It owns the ordered
// project list and the ordered subscriber list, and after every successful
// mutation it calls each subscriber synchronously with its own snapshot.
//
// A ProjectStore is not safe for concurrent use. Callers run it from a single
// event loop (see package eventloop); listeners may call back into the store
// because no lock is held during the fan-out.
type ProjectStore struct {
	projects    []project.Project
	index       map[string]int
	subscribers []subscriber
	nextSub     ports.Subscription

	newID      ports.IDGenerator
	idAttempts int
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

type subscriber struct {
	id       ports.Subscription
	listener ports.Listener
}

// StoreOption configures a ProjectStore.
type StoreOption func(*ProjectStore)

// WithIDGenerator replaces the default UUID v4 generator.
func WithIDGenerator(gen ports.IDGenerator) StoreOption {
	return func(s *ProjectStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithIDAttempts sets how many ids are generated before AddProject gives up
// on a collision. Values below 1 are ignored.
func WithIDAttempts(n int) StoreOption {
	return func(s *ProjectStore) {
		if n >= 1 {
			s.idAttempts = n
		}
	}
}

// WithLogger sets the logger used for mutation and error logging.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *ProjectStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records store counters on the given instruments. Nil disables
// metric recording.
func WithMetrics(metrics *telemetry.Metrics) StoreOption {
	return func(s *ProjectStore) {
		s.metrics = metrics
	}
}

// NewProjectStore creates an empty store. The composing entry point owns the
// instance and hands it to every component that needs it.
func NewProjectStore(opts ...StoreOption) *ProjectStore {
	s := &ProjectStore{
		index:      make(map[string]int),
		newID:      uuid.NewString,
		idAttempts: defaultIDAttempts,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe appends listener to the subscriber list and returns its handle.
// A nil listener is ignored and yields the zero handle.
func (s *ProjectStore) Subscribe(listener ports.Listener) ports.Subscription {
	if listener == nil {
		return 0
	}

	s.nextSub++
	s.subscribers = append(s.subscribers, subscriber{id: s.nextSub, listener: listener})

	s.logger.Debug("listener subscribed",
		slog.Uint64("subscription", uint64(s.nextSub)),
		slog.Int("subscribers", len(s.subscribers)),
	)
	return s.nextSub
}

// Unsubscribe removes the listener registered under sub, keeping the order of
// the remaining listeners. A fan-out already in progress is not affected.
func (s *ProjectStore) Unsubscribe(sub ports.Subscription) {
	for i, existing := range s.subscribers {
		if existing.id != sub {
			continue
		}

		next := make([]subscriber, 0, len(s.subscribers)-1)
		next = append(next, s.subscribers[:i]...)
		next = append(next, s.subscribers[i+1:]...)
		s.subscribers = next

		s.logger.Debug("listener unsubscribed", slog.Uint64("subscription", uint64(sub)))
		return
	}
}

// AddProject creates an active project, appends it, and notifies every
// listener. The only failure is domain.ErrConflict when every generated id
// collides with a held one.
func (s *ProjectStore) AddProject(title, description string, people int) (project.Project, error) {
	id, err := s.uniqueID()
	if err != nil {
		s.logger.Error("failed to add project",
			slog.String("operation", "AddProject"),
			slog.Int("attempts", s.idAttempts),
			slog.Any("error", err),
		)
		return project.Project{}, err
	}

	p := project.Project{
		ID:          id,
		Title:       title,
		Description: description,
		People:      people,
		Status:      project.StatusActive,
	}
	s.index[id] = len(s.projects)
	s.projects = append(s.projects, p)

	s.logger.Info("project added",
		slog.String("project_id", id),
		slog.String("title", title),
		slog.Int("people", people),
	)
	s.count(func(m *telemetry.Metrics) metric.Int64Counter { return m.ProjectsAdded })

	s.notify()
	return p, nil
}

// MoveProject sets the status of the project with the given id, even when it
// already has that status, and notifies every listener. An unknown id or an
// invalid status leaves the store untouched and notifies nobody.
func (s *ProjectStore) MoveProject(id string, status project.Status) bool {
	i, ok := s.index[id]
	if !ok || !status.IsValid() {
		s.logger.Debug("move ignored",
			slog.String("project_id", id),
			slog.String("status", status.String()),
			slog.Bool("known_id", ok),
		)
		s.count(func(m *telemetry.Metrics) metric.Int64Counter { return m.MoveMisses })
		return false
	}

	from := s.projects[i].Status
	s.projects[i].Status = status

	s.logger.Info("project moved",
		slog.String("project_id", id),
		slog.String("from", from.String()),
		slog.String("to", status.String()),
	)
	s.count(func(m *telemetry.Metrics) metric.Int64Counter { return m.ProjectsMoved })

	s.notify()
	return true
}

// Projects returns a snapshot of every project in insertion order.
func (s *ProjectStore) Projects() []project.Project {
	return s.snapshot()
}

// Len returns the number of held projects.
func (s *ProjectStore) Len() int {
	return len(s.projects)
}

// notify calls the listeners registered when the fan-out starts, in
// registration order, each with its own snapshot.
func (s *ProjectStore) notify() {
	subs := s.subscribers
	for _, sub := range subs {
		sub.listener(s.snapshot())
	}

	if n := len(subs); n > 0 && s.metrics != nil {
		s.metrics.ListenerNotifications.Add(context.Background(), int64(n))
	}
}

func (s *ProjectStore) snapshot() []project.Project {
	out := make([]project.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

func (s *ProjectStore) uniqueID() (string, error) {
	for range s.idAttempts {
		id := s.newID()
		if _, taken := s.index[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("generating project id after %d attempts: %w", s.idAttempts, domain.ErrConflict)
}

func (s *ProjectStore) count(pick func(*telemetry.Metrics) metric.Int64Counter) {
	if s.metrics == nil {
		return
	}
	pick(s.metrics).Add(context.Background(), 1)
}
