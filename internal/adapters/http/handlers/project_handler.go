// Package handlers provides HTTP request handlers for the service's API endpoints.
//
// Every handler that touches the project store runs its work on the shared
// event loop, so each request is one host event.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-tracker/internal/app/dragdrop"
	"github.com/jsamuelsen11/project-tracker/internal/app/eventloop"
	"github.com/jsamuelsen11/project-tracker/internal/domain"
	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// ProjectHandler handles HTTP requests for the project list, form
// submissions, and project drag sources.
type ProjectHandler struct {
	loop   *eventloop.Loop
	store  ports.ProjectStore
	intake ports.IntakeService
}

// NewProjectHandler creates a new ProjectHandler. store and intake are only
// called from inside loop.
func NewProjectHandler(loop *eventloop.Loop, store ports.ProjectStore, intake ports.IntakeService) *ProjectHandler {
	return &ProjectHandler{loop: loop, store: store, intake: intake}
}

// ListProjects handles GET /api/v1/projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	resp, err := eventloop.Call(r.Context(), h.loop, func() (dto.ProjectListResponse, error) {
		return dto.ToProjectListResponse(h.store.Projects()), nil
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	created, err := eventloop.Call(ctx, h.loop, func() (project.Project, error) {
		return h.intake.Submit(ctx, req.ToInput())
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(&created))
}

// DragStart handles POST /api/v1/projects/{id}/dragstart. It returns the
// payload the project's drag source writes.
func (h *ProjectHandler) DragStart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := eventloop.Call(r.Context(), h.loop, func() (dto.DragStartResponse, error) {
		p, err := h.find(id)
		if err != nil {
			return dto.DragStartResponse{}, err
		}

		dt := dragdrop.NewDataTransfer()
		src := dragdrop.NewSource(p)
		src.DragStart(dragdrop.NewEvent(dt))
		return dto.ToDragStartResponse(dt), nil
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProjectHandler) find(id string) (project.Project, error) {
	for _, p := range h.store.Projects() {
		if p.ID == id {
			return p, nil
		}
	}
	return project.Project{}, fmt.Errorf("project %q: %w", id, domain.ErrNotFound)
}
