// Package health keeps the readiness checks of the tracker's runtime
// components, such as its event loop.
package health

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry holds health checkers and runs them on demand. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register adds checker. When two checkers share a name, the result of the
// one registered last is reported.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every checker concurrently and returns each result keyed by
// name, nil meaning healthy. A slow checker only delays the call up to the
// deadline of ctx, which the checkers are expected to honor.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	errs := make([]error, len(checkers))
	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			errs[i] = c.HealthCheck(ctx)
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = errs[i]
	}
	return results
}
