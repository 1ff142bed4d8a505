package zoneamento

import (
	"slices"

	"github.com/rcbarbosa/zoneamento/domain"
)

// Registry is an ordered collection of named layers. It makes the host
// project's layer state explicit: pipelines read it for input discovery and
// append derived partitions to it. Registration order is load-bearing, since
// layer selection uses first-match-wins scanning.
type Registry struct {
	layers []*domain.Layer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends layers to the registry in the given order.
func (registry *Registry) Add(layers ...*domain.Layer) {
	registry.layers = append(registry.layers, layers...)
}

// Layers returns the registered layers in registration order.
func (registry *Registry) Layers() []*domain.Layer {
	return slices.Clone(registry.layers)
}

// Lookup returns the first registered layer with the exact given name.
func (registry *Registry) Lookup(name string) (*domain.Layer, bool) {
	for _, layer := range registry.layers {
		if layer.Name == name {
			return layer, true
		}
	}
	return nil, false
}

// Len returns the number of registered layers.
func (registry *Registry) Len() int {
	return len(registry.layers)
}
