// Package geos implements the engine contract on top of the GEOS library.
// Geometries cross the cgo boundary as WKB; reprojection is delegated to PROJ.
//
// GEOS reports failures by panicking inside the binding, so every primitive
// runs behind a recover guard that converts the panic into an *engine.OpError.
package geos

import (
	"fmt"
	"maps"

	"github.com/paulmach/orb"
	geos "github.com/twpayne/go-geos"
	proj "github.com/twpayne/go-proj/v10"

	"github.com/rcbarbosa/zoneamento/domain"
	"github.com/rcbarbosa/zoneamento/engine"
)

// Engine is a GEOS-backed geometry engine. It is not safe for concurrent use;
// the pipelines call it from a single goroutine.
type Engine struct {
	geosCtx *geos.Context
	projCtx *proj.Context
}

var _ engine.Engine = (*Engine)(nil)

// New creates an engine with fresh GEOS and PROJ contexts.
func New() *Engine {
	return &Engine{
		geosCtx: geos.NewContext(),
		projCtx: proj.NewContext(),
	}
}

// Repair runs GEOS MakeValid over every feature geometry. Features without a
// geometry are carried through unchanged.
func (e *Engine) Repair(layer *domain.Layer) (*domain.Layer, error) {
	out := layer.Derive()
	for i := range layer.Features {
		feature := layer.Features[i]
		if !feature.HasGeometry() {
			out.Append(domain.Feature{Geometry: feature.Geometry, Attributes: maps.Clone(feature.Attributes)})
			continue
		}
		geom, err := e.toGeos(feature.Geometry)
		if err != nil {
			return nil, &engine.OpError{Op: "repair", Layer: layer.Name, Err: err}
		}
		var fixed *geos.Geom
		if err := guard("repair", layer.Name, func() { fixed = geom.MakeValid() }); err != nil {
			return nil, err
		}
		repaired, err := fromGeos(fixed)
		if err != nil {
			return nil, &engine.OpError{Op: "repair", Layer: layer.Name, Err: err}
		}
		out.Append(domain.Feature{Geometry: repaired, Attributes: maps.Clone(feature.Attributes)})
	}
	return out, nil
}

// Intersect clips the input features to the combined area of the overlay
// layer. Features that fall entirely outside the overlay are dropped; the
// survivors keep the input-side attributes.
func (e *Engine) Intersect(input, overlay *domain.Layer) (*domain.Layer, error) {
	return e.clip("intersect", input, overlay, func(g, mask *geos.Geom) *geos.Geom {
		return g.Intersection(mask)
	})
}

// Difference removes the combined area of the overlay layer from every input
// feature. Features fully covered by the overlay are dropped.
func (e *Engine) Difference(input, overlay *domain.Layer) (*domain.Layer, error) {
	return e.clip("difference", input, overlay, func(g, mask *geos.Geom) *geos.Geom {
		return g.Difference(mask)
	})
}

func (e *Engine) clip(op string, input, overlay *domain.Layer, apply func(g, mask *geos.Geom) *geos.Geom) (*domain.Layer, error) {
	mask, err := e.combined(op, overlay)
	if err != nil {
		return nil, err
	}
	out := input.Derive()
	for i := range input.Features {
		feature := input.Features[i]
		if !feature.HasGeometry() {
			continue
		}
		geom, err := e.toGeos(feature.Geometry)
		if err != nil {
			return nil, &engine.OpError{Op: op, Layer: input.Name, Err: err}
		}
		var clipped *geos.Geom
		if err := guard(op, input.Name, func() { clipped = apply(geom, mask) }); err != nil {
			return nil, err
		}
		if clipped.IsEmpty() {
			continue
		}
		result, err := fromGeos(clipped)
		if err != nil {
			return nil, &engine.OpError{Op: op, Layer: input.Name, Err: err}
		}
		out.Append(domain.Feature{Geometry: result, Attributes: maps.Clone(feature.Attributes)})
	}
	return out, nil
}

// combined folds all overlay feature geometries into one GEOS geometry used
// as the clip mask.
func (e *Engine) combined(op string, overlay *domain.Layer) (*geos.Geom, error) {
	var mask *geos.Geom
	for i := range overlay.Features {
		feature := overlay.Features[i]
		if !feature.HasGeometry() {
			continue
		}
		geom, err := e.toGeos(feature.Geometry)
		if err != nil {
			return nil, &engine.OpError{Op: op, Layer: overlay.Name, Err: err}
		}
		if mask == nil {
			mask = geom
			continue
		}
		if err := guard(op, overlay.Name, func() { mask = mask.Union(geom) }); err != nil {
			return nil, err
		}
	}
	if mask == nil {
		return nil, &engine.OpError{Op: op, Layer: overlay.Name, Err: fmt.Errorf("overlay layer has no usable geometry")}
	}
	return mask, nil
}

// Merge concatenates the features of all layers into one layer carrying the
// target coordinate frame. Geometries are not dissolved.
func (e *Engine) Merge(layers []*domain.Layer, target domain.CRS) (*domain.Layer, error) {
	if len(layers) == 0 {
		return nil, &engine.OpError{Op: "merge", Err: fmt.Errorf("no layers to merge")}
	}
	out := domain.NewLayer("", target)
	for _, layer := range layers {
		for _, field := range layer.Fields {
			out.EnsureField(field.Name, field.Type)
		}
		for i := range layer.Features {
			feature := layer.Features[i]
			var geom orb.Geometry
			if feature.Geometry != nil {
				geom = orb.Clone(feature.Geometry)
			}
			out.Append(domain.Feature{Geometry: geom, Attributes: maps.Clone(feature.Attributes)})
		}
	}
	return out, nil
}

// guard converts a GEOS panic into an *engine.OpError.
func guard(op, layerName string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &engine.OpError{Op: op, Layer: layerName, Err: fmt.Errorf("%v", r)}
		}
	}()
	fn()
	return nil
}
