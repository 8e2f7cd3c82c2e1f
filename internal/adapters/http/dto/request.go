package dto

import (
	"encoding/json"
	"strings"

	"github.com/jsamuelsen11/project-tracker/internal/domain"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
)

const msgWholeNumber = "must be a whole number"

// CreateProjectRequest is the project form submission. People accepts a JSON
// number or a numeric string, the way form inputs arrive.
type CreateProjectRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	People      json.Number `json:"people"`
}

// Validate checks that the request can be converted to a project.Input.
// The form rules themselves are applied by the intake service.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	fields := make(map[string]string)

	people := strings.TrimSpace(r.People.String())
	if people == "" {
		fields["people"] = domain.MsgRequired
	} else if _, err := json.Number(people).Int64(); err != nil {
		fields["people"] = msgWholeNumber
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToInput converts the request to a project.Input. Call Validate first.
func (r *CreateProjectRequest) ToInput() project.Input {
	people, _ := json.Number(strings.TrimSpace(r.People.String())).Int64()
	return project.Input{
		Title:       r.Title,
		Description: r.Description,
		People:      int(people),
	}
}

// DragEventRequest describes a host drag event delivered to a bucket. Types
// lists the advertised payload types (dragover); Data carries the payload
// contents by type (drop).
type DragEventRequest struct {
	Types []string          `json:"types,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}
