package geos

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	geos "github.com/twpayne/go-geos"
)

// toGeos converts an orb geometry into a GEOS geometry via WKB.
func (e *Engine) toGeos(geom orb.Geometry) (*geos.Geom, error) {
	data, err := wkb.Marshal(geom)
	if err != nil {
		return nil, err
	}
	return e.geosCtx.NewGeomFromWKB(data)
}

// fromGeos converts a GEOS geometry back into an orb geometry via WKB.
func fromGeos(geom *geos.Geom) (orb.Geometry, error) {
	return wkb.Unmarshal(geom.ToWKB())
}
