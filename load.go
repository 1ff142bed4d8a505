package zoneamento

import (
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/paulmach/orb/geojson"

	"github.com/rcbarbosa/zoneamento/domain"
)

// LoadGeoJSON reads a GeoJSON feature collection from disk into a layer, for
// hosts that feed the registry from files. The content type is sniffed before
// parsing so that binary formats fail with a clear error instead of a JSON
// one. An empty crs defaults to WGS 84, the frame GeoJSON coordinates are
// defined in; pass the actual frame for files that use a different one.
func LoadGeoJSON(path string, name string, crs domain.CRS) (*domain.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layer file %s : %w", path, err)
	}

	kind := mimetype.Detect(data)
	if !kind.Is("application/geo+json") && !kind.Is("application/json") && !kind.Is("text/plain") {
		return nil, fmt.Errorf("layer file %s has type %s, expected GeoJSON: %w", path, kind, ErrInvalidLayer)
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feature collection %s : %w", path, err)
	}

	if crs == "" {
		crs = domain.WGS84
	}
	layer := domain.NewLayer(name, crs)
	for _, feature := range collection.Features {
		attributes := make(map[string]any, len(feature.Properties))
		for key, value := range feature.Properties {
			attributes[key] = value
			layer.EnsureField(key, fieldTypeOf(value))
		}
		layer.Append(domain.Feature{Geometry: feature.Geometry, Attributes: attributes})
	}
	return layer, nil
}

func fieldTypeOf(value any) domain.FieldType {
	switch value.(type) {
	case float64, float32:
		return domain.FieldDouble
	case int, int32, int64:
		return domain.FieldInteger
	default:
		return domain.FieldString
	}
}
