package ports

import (
	"context"

	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
)

// Listener receives a fresh snapshot of every project, in insertion order,
// after each store mutation. The slice is a new copy on every call; listeners
// must not mutate it or keep assumptions about its identity across calls.
type Listener func(snapshot []project.Project)

// Subscription identifies one registered listener.
type Subscription uint64

// IDGenerator produces a new project id per call.
type IDGenerator func() string

// ProjectStore defines the observable project container.
// Implemented by the application layer; called by the drag-and-drop
// coordinators, the bucket views, and the intake service.
type ProjectStore interface {
	// Subscribe appends listener to the subscriber list. Listeners are
	// notified in registration order. The handle may be ignored.
	Subscribe(listener Listener) Subscription

	// Unsubscribe removes the listener registered under sub. Unknown
	// handles are ignored.
	Unsubscribe(sub Subscription)

	// AddProject creates an active project with a fresh id, appends it and
	// notifies every listener. Returns domain.ErrConflict only when no
	// unique id could be generated.
	AddProject(title, description string, people int) (project.Project, error)

	// MoveProject sets the status of the project with the given id and
	// notifies every listener. Returns false, without mutating or
	// notifying, when no project has that id.
	MoveProject(id string, status project.Status) bool

	// Projects returns a snapshot of all projects in insertion order.
	Projects() []project.Project
}

// IntakeService defines the service port for project form submissions.
type IntakeService interface {
	// Submit validates the input and, when accepted, adds the project.
	// Returns domain.ErrValidation (as *domain.ValidationError) on rejection.
	Submit(ctx context.Context, in project.Input) (project.Project, error)
}
