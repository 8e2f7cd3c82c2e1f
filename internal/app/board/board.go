// Package board holds the bucket views: one per project status, each
// re-filtering the store's snapshots and acting as its own drop target.
package board

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jsamuelsen11/project-tracker/internal/app/dragdrop"
	"github.com/jsamuelsen11/project-tracker/internal/domain"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// Bucket is the view of every project with one status.
type Bucket struct {
	status   project.Status
	target   *dragdrop.Target
	assigned []project.Project
	renders  int
}

// NewBucket creates the bucket for status and subscribes it to store.
// It starts empty and fills on the next store mutation, like a freshly
// rendered list.
func NewBucket(status project.Status, store ports.ProjectStore, logger *slog.Logger, metrics *telemetry.Metrics) *Bucket {
	b := &Bucket{
		status: status,
		target: dragdrop.NewTarget(status, store, logger, metrics),
	}
	store.Subscribe(b.render)
	return b
}

// Status returns the bucket's status.
func (b *Bucket) Status() project.Status { return b.status }

// Title is the bucket heading, e.g. "ACTIVE PROJECTS".
func (b *Bucket) Title() string {
	return strings.ToUpper(b.status.String()) + " PROJECTS"
}

// Target returns the bucket's drop target.
func (b *Bucket) Target() *dragdrop.Target { return b.target }

// Droppable reports whether the droppable marker is shown.
func (b *Bucket) Droppable() bool { return b.target.Droppable() }

// Projects returns the projects assigned by the last render.
func (b *Bucket) Projects() []project.Project {
	return slices.Clone(b.assigned)
}

// Renders counts how many snapshots the bucket has rendered.
func (b *Bucket) Renders() int { return b.renders }

func (b *Bucket) render(snapshot []project.Project) {
	b.assigned = project.Filter(snapshot, b.status)
	b.renders++
}

// Board is the pair of buckets shown side by side.
type Board struct {
	buckets []*Bucket
}

// New creates one bucket per status, subscribed in status order.
func New(store ports.ProjectStore, logger *slog.Logger, metrics *telemetry.Metrics) *Board {
	b := &Board{}
	for _, s := range project.Statuses {
		b.buckets = append(b.buckets, NewBucket(s, store, logger, metrics))
	}
	return b
}

// Buckets returns every bucket in status order.
func (b *Board) Buckets() []*Bucket {
	return slices.Clone(b.buckets)
}

// Bucket returns the bucket for status. Unknown statuses return
// domain.ErrNotFound.
func (b *Board) Bucket(status project.Status) (*Bucket, error) {
	for _, bucket := range b.buckets {
		if bucket.status == status {
			return bucket, nil
		}
	}
	return nil, fmt.Errorf("bucket %q: %w", status, domain.ErrNotFound)
}
