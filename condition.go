package zoneamento

import (
	"fmt"

	"github.com/rcbarbosa/zoneamento/core"
	"github.com/rcbarbosa/zoneamento/domain"
)

// conditionResult always carries a usable layer: the conditioned one when
// everything succeeded, or the best layer reached before a failure. The
// failure reasons are recorded so callers can tell a degraded layer apart
// from a fully conditioned one.
type conditionResult struct {
	Layer        *domain.Layer
	ReprojectErr error
	RepairErr    error
}

// Degraded reports whether any conditioning step fell back to its input.
func (result conditionResult) Degraded() bool {
	return result.ReprojectErr != nil || result.RepairErr != nil
}

// condition harmonizes a layer's coordinate frame and repairs its geometries
// before it enters any overlay operation. Reprojection runs first and is
// skipped when the layer already carries the target frame; repair runs on the
// reprojection result. Both steps are best-effort: a failure keeps the prior
// layer value and the run continues, since a mismatched frame produces
// geometrically wrong but structurally valid output while an abort would
// produce none.
func (project *Project) condition(layer *domain.Layer, target domain.CRS) conditionResult {
	result := conditionResult{Layer: layer}

	if !layer.CRS.Equal(target) {
		reprojected, err := project.Engine.Reproject(layer, target)
		if err != nil {
			result.ReprojectErr = err
			project.WriteLog("WARN", fmt.Sprintf("reprojecting layer %q to %s : %v, keeping original frame", layer.Name, target, err), core.LogWithLayer(layer.Name))
		} else {
			result.Layer = reprojected
		}
	}

	repaired, err := project.Engine.Repair(result.Layer)
	if err != nil {
		result.RepairErr = err
		project.WriteLog("WARN", fmt.Sprintf("repairing geometries of layer %q : %v, keeping unrepaired geometries", layer.Name, err), core.LogWithLayer(layer.Name))
		return result
	}
	result.Layer = repaired
	return result
}
