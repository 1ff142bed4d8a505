package zoneamento

import (
	"fmt"
	"maps"

	"github.com/rcbarbosa/zoneamento/core"
	"github.com/rcbarbosa/zoneamento/domain"
)

// Output layer names of the priority pipeline. Fixed literals; hosts key
// styling and reporting on them.
const (
	NameSuppressionInAPP   = "Área de supressão em APP"
	NameSuppressionInRL    = "Área de supressão em RL"
	NameSuppressionOutside = "Área de supressão fora"
)

// runPriority executes the precedence-ordered overlay chain on two or three
// environmental layers: [base, APP overlay, optional RL overlay]. Each stage
// subtracts the previous partition's contribution from the remaining base
// before computing the next, so the published partitions are pairwise
// disjoint by construction. Every overlay operation is independently guarded;
// a failure degrades that one partition and the remaining stages continue.
func (project *Project) runPriority(run *domain.Run, layers []*domain.Layer) {
	base := layers[0]
	target := project.targetCRS(base)

	remaining := project.condition(base, target).Layer
	overlayAPP := project.condition(layers[1], target).Layer

	var partitionAPP *domain.Layer
	intersected, err := project.Engine.Intersect(remaining, overlayAPP)
	if err != nil {
		project.WriteLog("ERROR", fmt.Sprintf("intersecting %q with %q : %v, skipping APP partition", base.Name, overlayAPP.Name, err), core.LogWithRunID(run.ID))
	} else {
		partitionAPP = intersected
		partitionAPP.Name = NameSuppressionInAPP
		project.AnnotateArea(partitionAPP)
		project.publish(run, partitionAPP)
	}

	// Remove the APP-covered area from the base regardless of whether the
	// intersection itself succeeded, falling back to subtracting the raw
	// overlay. Later stages must never double-count the APP region.
	removal := partitionAPP
	if removal == nil {
		removal = overlayAPP
	}
	if differenced, err := project.Engine.Difference(remaining, removal); err != nil {
		project.WriteLog("ERROR", fmt.Sprintf("subtracting %q from %q : %v", removal.Name, base.Name, err), core.LogWithRunID(run.ID))
	} else {
		remaining = differenced
	}

	if len(layers) < 3 {
		outside := detach(remaining)
		outside.Name = NameSuppressionOutside
		project.AnnotateArea(outside)
		project.publish(run, outside)
		return
	}

	overlayRL := project.condition(layers[2], target).Layer

	var partitionRL *domain.Layer
	intersected, err = project.Engine.Intersect(overlayRL, remaining)
	if err != nil {
		project.WriteLog("ERROR", fmt.Sprintf("intersecting %q with remaining base : %v, skipping RL partition", overlayRL.Name, err), core.LogWithRunID(run.ID))
	} else {
		partitionRL = intersected
		partitionRL.Name = NameSuppressionInRL
		project.AnnotateArea(partitionRL)
		project.publish(run, partitionRL)
	}

	removal = partitionRL
	if removal == nil {
		removal = overlayRL
	}
	outside, err := project.Engine.Difference(remaining, removal)
	if err != nil {
		project.WriteLog("ERROR", fmt.Sprintf("subtracting %q from remaining base : %v, skipping outside partition", removal.Name, err), core.LogWithRunID(run.ID))
		return
	}
	outside.Name = NameSuppressionOutside
	project.AnnotateArea(outside)
	project.publish(run, outside)
}

// detach copies a layer before it is renamed, annotated and published. When
// both conditioning and a difference failed, the value flowing through the
// pipeline can still alias a registry source layer, and published partitions
// must never write through to their inputs.
func detach(layer *domain.Layer) *domain.Layer {
	out := layer.Derive()
	for i := range layer.Features {
		feature := layer.Features[i]
		out.Append(domain.Feature{Geometry: feature.Geometry, Attributes: maps.Clone(feature.Attributes)})
	}
	return out
}
