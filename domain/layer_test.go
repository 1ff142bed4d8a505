package domain

import (
	"testing"

	"github.com/paulmach/orb"
)

func square() orb.Polygon {
	return orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
}

func TestFeature_HasGeometry(t *testing.T) {
	cases := []struct {
		name    string
		feature Feature
		want    bool
	}{
		{"nil geometry", Feature{}, false},
		{"empty polygon", Feature{Geometry: orb.Polygon{}}, false},
		{"polygon with empty ring", Feature{Geometry: orb.Polygon{orb.Ring{}}}, false},
		{"empty multipolygon", Feature{Geometry: orb.MultiPolygon{}}, false},
		{"multipolygon with empty polygon", Feature{Geometry: orb.MultiPolygon{orb.Polygon{}}}, false},
		{"polygon", Feature{Geometry: square()}, true},
		{"multipolygon", Feature{Geometry: orb.MultiPolygon{square()}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.feature.HasGeometry(); got != c.want {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", c.want, got)
			}
		})
	}
}

func TestNewLayer(t *testing.T) {
	t.Run("should assign a time-ordered id", func(t *testing.T) {
		layer := NewLayer("Camada01", "EPSG:31982")
		if layer.ID.Version() != 7 {
			t.Fatalf("\nwanted:\nversion 7 id\ngot:\nversion %d", layer.ID.Version())
		}
	})
}

func TestLayer_EnsureField(t *testing.T) {
	t.Run("should add a missing field and report it", func(t *testing.T) {
		layer := NewLayer("Camada01", "EPSG:31982")
		if !layer.EnsureField("Area_ha", FieldDouble) {
			t.Fatalf("\nwanted:\ntrue\ngot:\nfalse")
		}
		if !layer.HasField("Area_ha") {
			t.Fatalf("\nwanted:\nfield present\ngot:\nmissing")
		}
	})

	t.Run("should leave exactly one field on repeated calls", func(t *testing.T) {
		layer := NewLayer("Camada01", "EPSG:31982")
		layer.EnsureField("Area_ha", FieldDouble)
		if layer.EnsureField("Area_ha", FieldDouble) {
			t.Fatalf("\nwanted:\nfalse on second call\ngot:\ntrue")
		}
		if len(layer.Fields) != 1 {
			t.Fatalf("\nwanted:\n1 field\ngot:\n%d", len(layer.Fields))
		}
	})
}

func TestLayer_Derive(t *testing.T) {
	t.Run("should inherit name, frame and schema but not features", func(t *testing.T) {
		layer := NewLayer("Camada01", "EPSG:31982")
		layer.EnsureField("nome", FieldString)
		layer.Append(Feature{Geometry: square()})

		derived := layer.Derive()

		if derived.ID == layer.ID {
			t.Fatalf("\nwanted:\nfresh id\ngot:\nsame id %s", derived.ID)
		}
		if derived.ID.Version() != 7 {
			t.Fatalf("\nwanted:\nversion 7 id\ngot:\nversion %d", derived.ID.Version())
		}
		if derived.Name != layer.Name || derived.CRS != layer.CRS {
			t.Fatalf("\nwanted:\n%q %s\ngot:\n%q %s", layer.Name, layer.CRS, derived.Name, derived.CRS)
		}
		if len(derived.Fields) != 1 || derived.Fields[0].Name != "nome" {
			t.Fatalf("\nwanted:\ninherited schema\ngot:\n%v", derived.Fields)
		}
		if len(derived.Features) != 0 {
			t.Fatalf("\nwanted:\n0 features\ngot:\n%d", len(derived.Features))
		}
	})

	t.Run("should not share the schema slice with the source", func(t *testing.T) {
		layer := NewLayer("Camada01", "EPSG:31982")
		layer.EnsureField("nome", FieldString)

		derived := layer.Derive()
		derived.EnsureField("Area_ha", FieldDouble)

		if layer.HasField("Area_ha") {
			t.Fatalf("\nwanted:\nsource schema unchanged\ngot:\nArea_ha added")
		}
	})
}
