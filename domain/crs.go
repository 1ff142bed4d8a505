package domain

import "strings"

// CRS is an authority-qualified coordinate reference frame identifier such as
// "EPSG:31982". Equality of codes implies that no reprojection is needed.
type CRS string

// WGS84 is the coordinate frame assumed for GeoJSON input.
const WGS84 CRS = "EPSG:4326"

// geographicCodes lists the authority codes of the geographic (degree-based)
// frames in common use for Brazilian environmental data. Everything else is
// treated as projected with areas in square meters.
var geographicCodes = map[string]bool{
	"EPSG:4326": true, // WGS 84
	"EPSG:4674": true, // SIRGAS 2000
	"EPSG:4618": true, // SAD69
}

func (c CRS) String() string {
	return string(c)
}

// Valid reports whether the identifier has the "AUTHORITY:code" shape.
func (c CRS) Valid() bool {
	authority, code, found := strings.Cut(string(c), ":")
	return found && authority != "" && code != ""
}

// Authority returns the authority part of the identifier, e.g. "EPSG".
func (c CRS) Authority() string {
	authority, _, _ := strings.Cut(string(c), ":")
	return authority
}

// Code returns the code part of the identifier, e.g. "31982".
func (c CRS) Code() string {
	_, code, _ := strings.Cut(string(c), ":")
	return code
}

// Equal compares two identifiers case-insensitively.
func (c CRS) Equal(other CRS) bool {
	return strings.EqualFold(string(c), string(other))
}

// Geographic reports whether the frame expresses coordinates in degrees.
// Planar area of degree coordinates is meaningless, so callers must switch to
// spherical area computation for geographic frames.
func (c CRS) Geographic() bool {
	return geographicCodes[strings.ToUpper(string(c))]
}
