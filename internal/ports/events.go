package ports

// MIMETextPlain is the payload type that carries a project id during a drag.
const MIMETextPlain = "text/plain"

// DataTransfer is the drag payload channel, keyed by MIME type.
type DataTransfer interface {
	// Types lists the MIME types the payload advertises, in write order.
	Types() []string

	// GetData returns the payload stored under mime, or "".
	GetData(mime string) string

	// SetData stores data under mime.
	SetData(mime, data string)

	// SetEffectAllowed records which drop effects the source permits.
	SetEffectAllowed(effect string)
}

// DragEvent is a host drag event (dragstart, dragover, dragleave, drop).
type DragEvent interface {
	// PreventDefault suppresses the host's default handling. For dragover
	// this is what permits a drop.
	PreventDefault()

	// DefaultPrevented reports whether PreventDefault was called.
	DefaultPrevented() bool

	// DataTransfer returns the payload channel. It may be nil.
	DataTransfer() DataTransfer
}
