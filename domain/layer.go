package domain

import (
	"slices"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// FieldType identifies the value type of an attribute field.
type FieldType string

const (
	FieldDouble  FieldType = "double"
	FieldInteger FieldType = "integer"
	FieldString  FieldType = "string"
)

// Field describes one column of a layer's attribute table.
type Field struct {
	Name string    // Attribute name, unique within the layer.
	Type FieldType // Value type of the attribute.
}

// Feature is one polygon (or multi-polygon) geometry plus its attribute record.
// The geometry may be nil or empty; consumers must skip such features rather
// than treat them as zero-area.
type Feature struct {
	Geometry   orb.Geometry   // Polygon or MultiPolygon, possibly nil.
	Attributes map[string]any // Attribute values keyed by field name.
}

// HasGeometry reports whether the feature carries a non-empty geometry.
func (f *Feature) HasGeometry() bool {
	switch geom := f.Geometry.(type) {
	case nil:
		return false
	case orb.Polygon:
		for _, ring := range geom {
			if len(ring) > 0 {
				return true
			}
		}
		return false
	case orb.MultiPolygon:
		for _, poly := range geom {
			for _, ring := range poly {
				if len(ring) > 0 {
					return true
				}
			}
		}
		return false
	default:
		return true
	}
}

// Layer is a named collection of polygon features sharing one coordinate
// reference frame and one attribute schema. Source layers are owned by the
// host registry; pipelines only read them and derive fresh layers.
type Layer struct {
	ID       uuid.UUID // Unique identifier for the layer.
	Name     string    // Display name, used for selection and publication.
	CRS      CRS       // Coordinate reference frame of all feature geometries.
	Fields   []Field   // Attribute schema shared by all features.
	Features []Feature // The polygon features of the layer.
}

// NewLayer creates an empty layer with the given name and coordinate frame.
func NewLayer(name string, crs CRS) *Layer {
	return &Layer{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
		CRS:  crs,
	}
}

// Derive creates an empty layer that inherits the receiver's name, coordinate
// frame and attribute schema. Derived layers back every repair, reprojection
// and overlay output so that source layers are never mutated in place.
func (l *Layer) Derive() *Layer {
	return &Layer{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   l.Name,
		CRS:    l.CRS,
		Fields: slices.Clone(l.Fields),
	}
}

// HasField reports whether the attribute schema contains a field with the given name.
func (l *Layer) HasField(name string) bool {
	for _, field := range l.Fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

// EnsureField extends the attribute schema with the given field unless a field
// with the same name already exists. It reports whether the field was added,
// guaranteeing that repeated calls leave exactly one field with that name.
func (l *Layer) EnsureField(name string, fieldType FieldType) bool {
	if l.HasField(name) {
		return false
	}
	l.Fields = append(l.Fields, Field{Name: name, Type: fieldType})
	return true
}

// Append adds features to the layer.
func (l *Layer) Append(features ...Feature) {
	l.Features = append(l.Features, features...)
}
