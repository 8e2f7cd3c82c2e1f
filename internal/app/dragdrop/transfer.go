package dragdrop

import (
	"slices"

	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.DataTransfer = (*DataTransfer)(nil)
	_ ports.DragEvent    = (*Event)(nil)
)

// DataTransfer is an in-memory drag payload keyed by MIME type. The HTTP
// adapter builds one per request; tests build them directly.
type DataTransfer struct {
	types         []string
	data          map[string]string
	effectAllowed string
}

// NewDataTransfer creates an empty payload.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{data: make(map[string]string)}
}

// Advertise adds mime to the advertised types without data, the way a
// dragover event exposes types but not contents.
func (d *DataTransfer) Advertise(mime string) {
	if !slices.Contains(d.types, mime) {
		d.types = append(d.types, mime)
	}
}

// Types lists the advertised MIME types in write order.
func (d *DataTransfer) Types() []string {
	return slices.Clone(d.types)
}

// GetData returns the payload stored under mime, or "".
func (d *DataTransfer) GetData(mime string) string {
	return d.data[mime]
}

// SetData stores data under mime and advertises the type.
func (d *DataTransfer) SetData(mime, data string) {
	d.Advertise(mime)
	d.data[mime] = data
}

// SetEffectAllowed records the permitted drop effect.
func (d *DataTransfer) SetEffectAllowed(effect string) {
	d.effectAllowed = effect
}

// EffectAllowed returns the drop effect set by the drag source.
func (d *DataTransfer) EffectAllowed() string {
	return d.effectAllowed
}

// Event is an in-memory drag event.
type Event struct {
	transfer  ports.DataTransfer
	prevented bool
}

// NewEvent wraps transfer in a drag event. A nil transfer models an event
// without a payload channel.
func NewEvent(transfer ports.DataTransfer) *Event {
	return &Event{transfer: transfer}
}

// PreventDefault marks the event's default handling as suppressed.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// DataTransfer returns the payload channel, which may be nil.
func (e *Event) DataTransfer() ports.DataTransfer { return e.transfer }
