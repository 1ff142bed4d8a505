package zoneamento

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/rcbarbosa/zoneamento/domain"
)

// AreaField is the attribute that carries each feature's area in hectares.
const AreaField = "Area_ha"

// meanEarthRadiusM converts steradians on the unit sphere to square meters.
const meanEarthRadiusM = 6371008.8

// AnnotateArea ensures the layer carries the Area_ha field exactly once and
// sets it on every feature with a non-empty geometry to the feature's area in
// hectares, rounded to 4 decimal digits. Features with empty or nil geometry
// are left unset, never written as zero. Re-running recomputes and overwrites
// all values, so the annotator is idempotent.
//
// Projected frames are assumed to report area in square meters. Geographic
// frames express coordinates in degrees, where planar area is meaningless, so
// their features are measured on the sphere instead.
func (project *Project) AnnotateArea(layer *domain.Layer) {
	if layer == nil {
		return
	}
	layer.EnsureField(AreaField, domain.FieldDouble)
	for i := range layer.Features {
		feature := &layer.Features[i]
		if !feature.HasGeometry() {
			continue
		}
		if feature.Attributes == nil {
			feature.Attributes = make(map[string]any)
		}
		hectares := geometryAreaM2(feature.Geometry, layer.CRS) / 10000
		feature.Attributes[AreaField] = math.Round(hectares*1e4) / 1e4
	}
}

// geometryAreaM2 measures a geometry in square meters: planar area for
// projected frames, spherical area for geographic ones.
func geometryAreaM2(geom orb.Geometry, crs domain.CRS) float64 {
	if crs.Geographic() {
		return sphericalAreaM2(geom)
	}
	return math.Abs(planar.Area(geom))
}

func sphericalAreaM2(geom orb.Geometry) float64 {
	switch g := geom.(type) {
	case orb.Polygon:
		return sphericalPolygonAreaM2(g)
	case orb.MultiPolygon:
		var total float64
		for _, polygon := range g {
			total += sphericalPolygonAreaM2(polygon)
		}
		return total
	default:
		return 0
	}
}

// sphericalPolygonAreaM2 measures a lon/lat polygon on the sphere: the outer
// ring's area minus the area of every hole.
func sphericalPolygonAreaM2(polygon orb.Polygon) float64 {
	var steradians float64
	for i, ring := range polygon {
		if i == 0 {
			steradians = ringSteradians(ring)
			continue
		}
		steradians -= ringSteradians(ring)
	}
	if steradians < 0 {
		steradians = 0
	}
	return steradians * meanEarthRadiusM * meanEarthRadiusM
}

func ringSteradians(ring orb.Ring) float64 {
	if len(ring) < 4 {
		return 0
	}
	points := make([]s2.Point, 0, len(ring)-1)
	for _, point := range ring[:len(ring)-1] { // the closing point repeats the first
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(point[1], point[0])))
	}
	loop := s2.LoopFromPoints(points)
	loop.Normalize()
	return loop.Area()
}
