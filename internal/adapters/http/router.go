// Package http is the tracker's inbound HTTP adapter and its host event
// system: each request is one event delivered to the project core through
// the event loop.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/handlers"
)

// NewRouter registers every route behind middlewares, outermost first.
// Unknown paths and methods answer with problem details like every other
// failure.
func NewRouter(
	projects *handlers.ProjectHandler,
	buckets *handlers.BucketHandler,
	healthH *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	// Set before Route so the API sub-router inherits them.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusNotFound, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusMethodNotAllowed, req.Method+" not allowed on "+req.URL.Path)
	})

	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", projects.ListProjects)
		r.Post("/projects", projects.CreateProject)
		r.Post("/projects/{id}/dragstart", projects.DragStart)

		r.Get("/buckets", buckets.ListBuckets)
		r.Get("/buckets/{status}", buckets.GetBucket)
		r.Post("/buckets/{status}/dragover", buckets.DragOver)
		r.Post("/buckets/{status}/dragleave", buckets.DragLeave)
		r.Post("/buckets/{status}/drop", buckets.Drop)
	})

	return r
}
