package zoneamento

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/domain"
)

// priorityNames are the environmental layer names, in legal precedence order:
// the suppression area is the base, the permanent-preservation area (APP)
// takes precedence over the legal reserve (RL). Matching is a normalized
// substring test, so real layer names like "Área de supressão - Fazenda X"
// are detected.
var priorityNames = []string{
	"área de supressão",
	"Área de Preservação Permanente",
	"Reserva legal",
}

// genericNames are the positional layer names of the generic mode.
var genericNames = []string{"Camada01", "Camada02", "Camada03", "Camada04"}

// Selection is the result of scanning the registry: the detected mode and the
// matched layers in declared name order (priority order or positional order).
type Selection struct {
	Mode   domain.Mode
	Layers []*domain.Layer
}

// Select scans the registry against the two naming conventions and decides
// which mode applies. Priority matching preempts generic matching: the
// positional names are only consulted when fewer than two environmental
// layers are found. With fewer than two matches of either kind the mode is
// ModeNone and the caller must stop without doing geometry work.
func (project *Project) Select() Selection {
	if layers := project.matchNames(priorityNames); len(layers) >= 2 {
		return Selection{Mode: domain.ModePriority, Layers: layers}
	}
	if layers := project.matchNames(genericNames); len(layers) >= 2 {
		return Selection{Mode: domain.ModeGeneric, Layers: layers}
	}
	return Selection{Mode: domain.ModeNone}
}

// matchNames collects one layer per declared name: the first layer in
// registration order whose normalized name contains the normalized target.
// A layer already claimed by an earlier name slot is skipped, so the same
// layer never fills two slots. When several layers compete for one slot only
// the first found is used; that fragility is logged, not resolved.
func (project *Project) matchNames(names []string) []*domain.Layer {
	var matched []*domain.Layer
	claimed := make(map[uuid.UUID]bool)
	for _, name := range names {
		target := Normalize(name)
		var slot *domain.Layer
		candidates := 0
		for _, layer := range project.Registry.Layers() {
			if claimed[layer.ID] || !strings.Contains(Normalize(layer.Name), target) {
				continue
			}
			candidates++
			if slot == nil {
				slot = layer
			}
		}
		if slot == nil {
			continue
		}
		if candidates > 1 {
			project.WriteLog("WARN", fmt.Sprintf("%d layers match name %q, using first found %q", candidates, name, slot.Name))
		}
		claimed[slot.ID] = true
		matched = append(matched, slot)
	}
	return matched
}
