package zoneamento

import (
	"fmt"

	"github.com/rcbarbosa/zoneamento/core"
	"github.com/rcbarbosa/zoneamento/domain"
)

// NameTotalOutside is the merged output of the generic mode.
const NameTotalOutside = "Fora Total"

// runGeneric executes the exclusive-partition pipeline on 2 to 4 positional
// layers. For each layer it subtracts every other layer through a sequential
// difference chain, deriving the region unique to that layer; the chain order
// follows the positional slots, which is deterministic and does not affect the
// residual. The exclusive regions are then merged into one "Fora Total" layer
// by feature concatenation, not geometric dissolve.
func (project *Project) runGeneric(run *domain.Run, layers []*domain.Layer) {
	target := project.targetCRS(layers[0])
	conditioned := make([]*domain.Layer, len(layers))
	for i, layer := range layers {
		conditioned[i] = project.condition(layer, target).Layer
	}

	exclusives := make([]*domain.Layer, 0, len(conditioned))
	for i, base := range conditioned {
		remainder := base
		for j, other := range conditioned {
			if j == i {
				continue
			}
			differenced, err := project.Engine.Difference(remainder, other)
			if err != nil {
				// Keep the current remainder; the exclusive region degrades to
				// an unrefined geometry instead of vanishing.
				project.WriteLog("ERROR", fmt.Sprintf("subtracting %q from %q : %v", other.Name, base.Name, err), core.LogWithRunID(run.ID))
				continue
			}
			remainder = differenced
		}
		exclusives = append(exclusives, remainder)

		if project.Config.PublishExclusives {
			partition := detach(remainder)
			partition.Name = fmt.Sprintf("Área Camada %02d", i+1)
			project.AnnotateArea(partition)
			project.publish(run, partition)
		}
	}

	project.auditSlivers(run, exclusives)

	merged, err := project.Engine.Merge(exclusives, target)
	if err != nil {
		project.WriteLog("ERROR", fmt.Sprintf("merging %d exclusive regions : %v", len(exclusives), err), core.LogWithRunID(run.ID))
		return
	}
	merged.Name = NameTotalOutside
	project.AnnotateArea(merged)
	project.publish(run, merged)
}

// auditSlivers checks the pairwise disjointness of the exclusive regions.
// The regions are disjoint by construction, but best-effort repair can leave
// slivers behind; when a tolerance is configured any overlap above it is
// logged. The audit never mutates or drops geometry.
func (project *Project) auditSlivers(run *domain.Run, exclusives []*domain.Layer) {
	tolerance := project.Config.SliverToleranceHa
	if tolerance <= 0 {
		return
	}
	for i := 0; i < len(exclusives); i++ {
		for j := i + 1; j < len(exclusives); j++ {
			overlap, err := project.Engine.Intersect(exclusives[i], exclusives[j])
			if err != nil {
				continue
			}
			var hectares float64
			for k := range overlap.Features {
				feature := &overlap.Features[k]
				if !feature.HasGeometry() {
					continue
				}
				hectares += geometryAreaM2(feature.Geometry, overlap.CRS) / 10000
			}
			if hectares > tolerance {
				project.WriteLog("WARN", fmt.Sprintf("exclusive regions %d and %d overlap by %.4f ha, above the %.4f ha tolerance", i+1, j+1, hectares, tolerance), core.LogWithRunID(run.ID))
			}
		}
	}
}
