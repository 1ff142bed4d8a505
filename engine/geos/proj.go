package geos

import (
	"fmt"
	"maps"

	"github.com/paulmach/orb"
	proj "github.com/twpayne/go-proj/v10"

	"github.com/rcbarbosa/zoneamento/domain"
	"github.com/rcbarbosa/zoneamento/engine"
)

// Reproject transforms every feature geometry into the target coordinate
// frame using a PROJ CRS-to-CRS transformation. Axis order is normalized for
// visualization, so coordinates stay lon/lat (or easting/northing) on both sides.
func (e *Engine) Reproject(layer *domain.Layer, target domain.CRS) (*domain.Layer, error) {
	transformation, err := e.projCtx.NewCRSToCRSTransformation(layer.CRS.String(), target.String())
	if err != nil {
		return nil, &engine.OpError{Op: "reproject", Layer: layer.Name, Err: err}
	}
	out := layer.Derive()
	out.CRS = target
	for i := range layer.Features {
		feature := layer.Features[i]
		if !feature.HasGeometry() {
			out.Append(domain.Feature{Geometry: feature.Geometry, Attributes: maps.Clone(feature.Attributes)})
			continue
		}
		geom, err := transformGeometry(transformation, feature.Geometry)
		if err != nil {
			return nil, &engine.OpError{Op: "reproject", Layer: layer.Name, Err: err}
		}
		out.Append(domain.Feature{Geometry: geom, Attributes: maps.Clone(feature.Attributes)})
	}
	return out, nil
}

func transformGeometry(transformation *proj.PJ, geom orb.Geometry) (orb.Geometry, error) {
	switch g := geom.(type) {
	case orb.Polygon:
		return transformPolygon(transformation, g)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, polygon := range g {
			transformed, err := transformPolygon(transformation, polygon)
			if err != nil {
				return nil, err
			}
			out[i] = transformed
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", geom)
	}
}

func transformPolygon(transformation *proj.PJ, polygon orb.Polygon) (orb.Polygon, error) {
	out := make(orb.Polygon, len(polygon))
	for i, ring := range polygon {
		transformed := make(orb.Ring, len(ring))
		for j, point := range ring {
			coord, err := transformation.Forward(proj.NewCoord(point[0], point[1], 0, 0))
			if err != nil {
				return nil, err
			}
			transformed[j] = orb.Point{coord.X(), coord.Y()}
		}
		out[i] = transformed
	}
	return out, nil
}
