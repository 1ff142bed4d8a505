// Package engine defines the geometry engine contract consumed by the overlay
// pipelines. The engine supplies the five primitives the pipelines depend on:
// validity repair, reprojection, intersection, difference and layer merge.
// Each primitive may fail independently; the pipelines treat every failure as
// local, substitute a documented fallback and continue.
package engine

import (
	"fmt"

	"github.com/rcbarbosa/zoneamento/domain"
)

// Engine is the geometry-processing collaborator of the overlay pipelines.
// Implementations must never mutate an input layer; every result is a fresh
// derived layer.
type Engine interface {
	// Repair returns a copy of the layer with invalid geometries made valid.
	Repair(layer *domain.Layer) (*domain.Layer, error)

	// Reproject returns a copy of the layer with all geometries transformed
	// into the target coordinate frame. Callers skip the call when the layer
	// already carries the target frame.
	Reproject(layer *domain.Layer, target domain.CRS) (*domain.Layer, error)

	// Intersect returns the features of input clipped to the area of overlay.
	// Output features keep the input-side attributes.
	Intersect(input, overlay *domain.Layer) (*domain.Layer, error)

	// Difference returns the features of input with the area of overlay removed.
	Difference(input, overlay *domain.Layer) (*domain.Layer, error)

	// Merge concatenates the features of all layers into one layer carrying
	// the target coordinate frame. Features are appended, not dissolved.
	Merge(layers []*domain.Layer, target domain.CRS) (*domain.Layer, error)
}

// OpError wraps a failure of one engine primitive. It carries the operation
// name and the layer it was applied to so that pipelines can log the failure
// before degrading to their fallback.
type OpError struct {
	Op    string // The engine primitive that failed.
	Layer string // Name of the layer the primitive was applied to.
	Err   error  // The underlying failure.
}

func (e *OpError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("engine %s on layer %q: %v", e.Op, e.Layer, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
