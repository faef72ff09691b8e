// Package domain contains the locator, the probe-point registry with its
// correlator, and the workflows the CLI drives.
package domain

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// Registry is the append-only, ordered, de-duplicated set of probe points
// the user registered. Registration may race with lookups from a live
// telemetry stream: writers serialize on a mutex and readers load an
// immutable snapshot.
type Registry struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[[]m.Location]
}

// NewRegistry creates a Registry holding points, in order, without duplicates.
func NewRegistry(points ...m.Location) *Registry {
	r := &Registry{}
	empty := []m.Location{}
	r.snapshot.Store(&empty)

	for _, point := range points {
		r.Register(point)
	}

	return r
}

// Register appends point unless an equal point is already registered. It
// reports whether the point was added. A location with an empty file or a
// negative line/column is a programming error and panics.
func (r *Registry) Register(point m.Location) bool {
	if !point.Valid() {
		panic(fmt.Sprintf("registry: invalid probe point %+v", point))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	if slices.Contains(current, point) {
		return false
	}

	next := make([]m.Location, len(current), len(current)+1)
	copy(next, current)
	next = append(next, point)
	r.snapshot.Store(&next)

	slog.Debug("registered probe point", "point", point, "total", len(next))

	return true
}

// Points returns the registered points in registration order. The slice
// must not be modified.
func (r *Registry) Points() []m.Location {
	return *r.snapshot.Load()
}

// Len returns the number of registered points.
func (r *Registry) Len() int {
	return len(r.Points())
}

// Contains reports whether point is registered.
func (r *Registry) Contains(point m.Location) bool {
	return slices.Contains(r.Points(), point)
}
