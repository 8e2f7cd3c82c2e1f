package dragdrop

import (
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// EffectMove is the only drop effect a project source allows.
const EffectMove = "move"

// Source is the drag source of one rendered project.
type Source struct {
	project project.Project
}

// NewSource creates the drag source for p.
func NewSource(p project.Project) *Source {
	return &Source{project: p}
}

// DragStart writes the project id as the text/plain payload.
func (s *Source) DragStart(ev ports.DragEvent) {
	dt := ev.DataTransfer()
	if dt == nil {
		return
	}
	dt.SetData(ports.MIMETextPlain, s.project.ID)
	dt.SetEffectAllowed(EffectMove)
}
