package zoneamento

import (
	"fmt"
	"maps"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/rcbarbosa/zoneamento/domain"
	"github.com/rcbarbosa/zoneamento/engine"
)

// cellSize is the grid resolution of the test engine. Test geometries are
// axis-aligned rectangles snapped to this grid, so rasterizing by cell
// centers is exact and every overlay result has a closed-form area.
const cellSize = 5.0

type cellSet map[[2]int]bool

// cellEngine implements the engine contract over a coarse grid: a geometry is
// the set of grid cells whose centers it contains, and intersection and
// difference are plain set operations. It records calls and can be told to
// fail any primitive, which lets tests drive the degrade paths.
type cellEngine struct {
	repairCalls    int
	reprojectCalls int
	failRepair     bool
	failReproject  bool
	failIntersect  bool
	failDifference bool
	failMerge      bool
}

var _ engine.Engine = (*cellEngine)(nil)

func (e *cellEngine) Repair(layer *domain.Layer) (*domain.Layer, error) {
	e.repairCalls++
	if e.failRepair {
		return nil, &engine.OpError{Op: "repair", Layer: layer.Name, Err: fmt.Errorf("forced repair failure")}
	}
	out := layer.Derive()
	for i := range layer.Features {
		feature := layer.Features[i]
		out.Append(domain.Feature{Geometry: feature.Geometry, Attributes: maps.Clone(feature.Attributes)})
	}
	return out, nil
}

func (e *cellEngine) Reproject(layer *domain.Layer, target domain.CRS) (*domain.Layer, error) {
	e.reprojectCalls++
	if e.failReproject {
		return nil, &engine.OpError{Op: "reproject", Layer: layer.Name, Err: fmt.Errorf("forced reproject failure")}
	}
	out := layer.Derive()
	out.CRS = target
	for i := range layer.Features {
		feature := layer.Features[i]
		out.Append(domain.Feature{Geometry: feature.Geometry, Attributes: maps.Clone(feature.Attributes)})
	}
	return out, nil
}

func (e *cellEngine) Intersect(input, overlay *domain.Layer) (*domain.Layer, error) {
	if e.failIntersect {
		return nil, &engine.OpError{Op: "intersect", Layer: input.Name, Err: fmt.Errorf("forced intersect failure")}
	}
	return e.clip(input, overlay, func(cells, mask cellSet) cellSet {
		out := make(cellSet)
		for cell := range cells {
			if mask[cell] {
				out[cell] = true
			}
		}
		return out
	}), nil
}

func (e *cellEngine) Difference(input, overlay *domain.Layer) (*domain.Layer, error) {
	if e.failDifference {
		return nil, &engine.OpError{Op: "difference", Layer: input.Name, Err: fmt.Errorf("forced difference failure")}
	}
	return e.clip(input, overlay, func(cells, mask cellSet) cellSet {
		out := make(cellSet)
		for cell := range cells {
			if !mask[cell] {
				out[cell] = true
			}
		}
		return out
	}), nil
}

func (e *cellEngine) clip(input, overlay *domain.Layer, apply func(cells, mask cellSet) cellSet) *domain.Layer {
	mask := cellsOfLayer(overlay)
	out := input.Derive()
	for i := range input.Features {
		feature := input.Features[i]
		if !feature.HasGeometry() {
			continue
		}
		cells := apply(cellsOfGeometry(feature.Geometry), mask)
		if len(cells) == 0 {
			continue
		}
		out.Append(domain.Feature{Geometry: geometryOfCells(cells), Attributes: maps.Clone(feature.Attributes)})
	}
	return out
}

func (e *cellEngine) Merge(layers []*domain.Layer, target domain.CRS) (*domain.Layer, error) {
	if e.failMerge {
		return nil, &engine.OpError{Op: "merge", Err: fmt.Errorf("forced merge failure")}
	}
	out := domain.NewLayer("", target)
	for _, layer := range layers {
		for _, field := range layer.Fields {
			out.EnsureField(field.Name, field.Type)
		}
		for i := range layer.Features {
			feature := layer.Features[i]
			out.Append(domain.Feature{Geometry: feature.Geometry, Attributes: maps.Clone(feature.Attributes)})
		}
	}
	return out, nil
}

func cellsOfGeometry(geom orb.Geometry) cellSet {
	cells := make(cellSet)
	if geom == nil {
		return cells
	}
	bound := geom.Bound()
	minX := int(math.Floor(bound.Min[0] / cellSize))
	maxX := int(math.Ceil(bound.Max[0] / cellSize))
	minY := int(math.Floor(bound.Min[1] / cellSize))
	maxY := int(math.Ceil(bound.Max[1] / cellSize))
	for ix := minX; ix < maxX; ix++ {
		for iy := minY; iy < maxY; iy++ {
			center := orb.Point{(float64(ix) + 0.5) * cellSize, (float64(iy) + 0.5) * cellSize}
			contained := false
			switch g := geom.(type) {
			case orb.Polygon:
				contained = planar.PolygonContains(g, center)
			case orb.MultiPolygon:
				contained = planar.MultiPolygonContains(g, center)
			}
			if contained {
				cells[[2]int{ix, iy}] = true
			}
		}
	}
	return cells
}

func cellsOfLayer(layer *domain.Layer) cellSet {
	cells := make(cellSet)
	for i := range layer.Features {
		for cell := range cellsOfGeometry(layer.Features[i].Geometry) {
			cells[cell] = true
		}
	}
	return cells
}

func geometryOfCells(cells cellSet) orb.Geometry {
	keys := make([][2]int, 0, len(cells))
	for cell := range cells {
		keys = append(keys, cell)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	out := make(orb.MultiPolygon, 0, len(keys))
	for _, cell := range keys {
		out = append(out, rect(float64(cell[0])*cellSize, float64(cell[1])*cellSize, float64(cell[0]+1)*cellSize, float64(cell[1]+1)*cellSize))
	}
	return out
}

func rect(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}}
}

// rectLayer creates a single-feature rectangular layer for overlay tests.
func rectLayer(name string, crs domain.CRS, minX, minY, maxX, maxY float64) *domain.Layer {
	layer := domain.NewLayer(name, crs)
	layer.Append(domain.Feature{Geometry: rect(minX, minY, maxX, maxY)})
	return layer
}

// disjoint reports whether two layers share no grid cells.
func disjoint(a, b *domain.Layer) bool {
	cellsA := cellsOfLayer(a)
	for cell := range cellsOfLayer(b) {
		if cellsA[cell] {
			return false
		}
	}
	return true
}
