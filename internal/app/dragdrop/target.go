// Package dragdrop translates host drag events into project store mutations.
//
// Each bucket view owns a Target. A hover session moves the target between
// two states:
//
//	idle --dragover(text/plain)--> hovering
//	hovering --dragleave--> idle
//	hovering --drop--> idle   (after MoveProject)
//
// The payload carries only the project id; the target never learns which
// bucket the project left. Source buckets find out from the next snapshot.
package dragdrop

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// HoverState is the drop target's position in a hover session.
type HoverState int

const (
	Idle HoverState = iota
	Hovering
)

// String implements fmt.Stringer.
func (h HoverState) String() string {
	if h == Hovering {
		return "hovering"
	}
	return "idle"
}

// Mover is the part of the store a drop target needs.
type Mover interface {
	MoveProject(id string, status project.Status) bool
}

// Target is the drop target of one bucket.
type Target struct {
	status  project.Status
	store   Mover
	state   HoverState
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewTarget creates an idle drop target that moves dropped projects to status.
func NewTarget(status project.Status, store Mover, logger *slog.Logger, metrics *telemetry.Metrics) *Target {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Target{
		status:  status,
		store:   store,
		logger:  logger.With(slog.String("bucket", status.String())),
		metrics: metrics,
	}
}

// Status returns the bucket status this target assigns on drop.
func (t *Target) Status() project.Status { return t.status }

// State returns the current hover state.
func (t *Target) State() HoverState { return t.state }

// Droppable reports whether the droppable marker is shown.
func (t *Target) Droppable() bool { return t.state == Hovering }

// DragOver permits a drop and shows the marker when the payload advertises
// text/plain. Other payloads leave both the event and the state alone.
func (t *Target) DragOver(ev ports.DragEvent) {
	t.record("dragover")

	dt := ev.DataTransfer()
	if dt == nil || !slices.Contains(dt.Types(), ports.MIMETextPlain) {
		return
	}
	ev.PreventDefault()
	t.state = Hovering
}

// DragLeave clears the marker whatever the payload.
func (t *Target) DragLeave(_ ports.DragEvent) {
	t.record("dragleave")
	t.state = Idle
}

// Drop moves the dropped project into this bucket and clears the marker.
// Unknown ids are ignored by the store; the marker is cleared regardless.
func (t *Target) Drop(ev ports.DragEvent) {
	t.record("drop")
	defer func() { t.state = Idle }()

	var id string
	if dt := ev.DataTransfer(); dt != nil {
		id = dt.GetData(ports.MIMETextPlain)
	}

	moved := t.store.MoveProject(id, t.status)
	t.logger.Debug("drop handled",
		slog.String("project_id", id),
		slog.Bool("moved", moved),
	)
}

// Handlers returns the target's event handlers keyed by event name, bound to
// this target so they act on its state however the host invokes them.
func (t *Target) Handlers() map[string]func(ports.DragEvent) {
	return map[string]func(ports.DragEvent){
		"dragover":  t.DragOver,
		"dragleave": t.DragLeave,
		"drop":      t.Drop,
	}
}

func (t *Target) record(event string) {
	if t.metrics == nil {
		return
	}
	t.metrics.DragEvents.Add(context.Background(), 1,
		metric.WithAttributes(
			telemetry.AttrBucket.String(t.status.String()),
			attribute.String("event", event),
		),
	)
}
