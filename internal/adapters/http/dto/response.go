// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/project-tracker/internal/app/board"
	"github.com/jsamuelsen11/project-tracker/internal/app/dragdrop"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
)

// ProjectResponse represents a single project in HTTP responses.
type ProjectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
	Assigned    string `json:"assigned"`
	Status      string `json:"status"`
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// BucketResponse is the rendered view of one bucket.
type BucketResponse struct {
	Status    string            `json:"status"`
	Title     string            `json:"title"`
	Droppable bool              `json:"droppable"`
	Projects  []ProjectResponse `json:"projects"`
	Count     int               `json:"count"`
}

// BoardResponse holds every bucket in status order.
type BoardResponse struct {
	Buckets []BucketResponse `json:"buckets"`
}

// DragEventResponse reports how a drop target handled a drag event.
type DragEventResponse struct {
	Event            string `json:"event"`
	Bucket           string `json:"bucket"`
	DefaultPrevented bool   `json:"default_prevented"`
	State            string `json:"state"`
}

// DragStartResponse is the payload a project's drag source writes.
type DragStartResponse struct {
	Types         []string          `json:"types"`
	Data          map[string]string `json:"data"`
	EffectAllowed string            `json:"effect_allowed"`
}

// ToProjectResponse converts a domain Project to an HTTP response DTO.
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		People:      p.People,
		Assigned:    p.AssignedLabel(),
		Status:      p.Status.String(),
	}
}

// ToProjectListResponse converts a snapshot to an HTTP list response DTO.
func ToProjectListResponse(projects []project.Project) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return ProjectListResponse{
		Projects: items,
		Count:    len(items),
	}
}

// ToBucketResponse renders a bucket view.
func ToBucketResponse(b *board.Bucket) BucketResponse {
	list := ToProjectListResponse(b.Projects())
	return BucketResponse{
		Status:    b.Status().String(),
		Title:     b.Title(),
		Droppable: b.Droppable(),
		Projects:  list.Projects,
		Count:     list.Count,
	}
}

// ToBoardResponse renders every bucket of the board.
func ToBoardResponse(b *board.Board) BoardResponse {
	buckets := b.Buckets()
	out := make([]BucketResponse, len(buckets))
	for i, bucket := range buckets {
		out[i] = ToBucketResponse(bucket)
	}
	return BoardResponse{Buckets: out}
}

// ToDragStartResponse converts a source-written payload to a response DTO.
func ToDragStartResponse(dt *dragdrop.DataTransfer) DragStartResponse {
	types := dt.Types()
	data := make(map[string]string, len(types))
	for _, mime := range types {
		data[mime] = dt.GetData(mime)
	}
	return DragStartResponse{
		Types:         types,
		Data:          data,
		EffectAllowed: dt.EffectAllowed(),
	}
}
