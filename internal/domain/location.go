package domain

import (
	"math"
	"strconv"
)

// HeliographicCoordinate is a position on the solar disk in degrees.
// Latitude is positive north; longitude is positive east.
type HeliographicCoordinate struct {
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
}

// Cartesian3D is a point in scene space.
type Cartesian3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the distance from the origin.
func (c Cartesian3D) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// ParseLocation converts a DONKI source location such as "N10E20" into a
// coordinate. It never fails: absent or malformed input yields (0, 0).
func ParseLocation(location string) HeliographicCoordinate {
	coord, _ := LookupLocation(location)
	return coord
}

// LookupLocation is ParseLocation that also reports whether both the
// latitude and longitude tokens were found.
//
// The grammar is two independent, unanchored scans over the input:
//
//	latitude  := ('N' | 'S') digit+
//	longitude := ('E' | 'W') digit+
//
// The first occurrence of each token wins; order and separators don't
// matter. No range check is applied, so "N999" yields 999°, but a digit
// run too long for a float64 falls back to (0, 0) like malformed input.
func LookupLocation(location string) (HeliographicCoordinate, bool) {
	lat, okLat := scanSignedToken(location, 'N', 'S')
	lon, okLon := scanSignedToken(location, 'E', 'W')
	if !okLat || !okLon || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return HeliographicCoordinate{}, false
	}
	return HeliographicCoordinate{LatitudeDeg: lat, LongitudeDeg: lon}, true
}

// scanSignedToken finds the first occurrence of pos or neg immediately
// followed by one or more ASCII digits and returns the digits as a signed
// value: positive after pos, negative after neg.
func scanSignedToken(s string, pos, neg byte) (float64, bool) {
	for i := 0; i < len(s)-1; i++ {
		c := s[i]
		if c != pos && c != neg {
			continue
		}
		end := i + 1
		for end < len(s) && isDigit(s[end]) {
			end++
		}
		if end == i+1 {
			continue
		}
		// A digit run always parses; very long runs saturate to ±Inf.
		v, _ := strconv.ParseFloat(s[i+1:end], 64)
		if c == neg {
			v = -v
		}
		return v, true
	}
	return 0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Project places a heliographic coordinate on the surface of a sphere of the
// given radius. (0°, 0°) maps to (0, 0, radius), facing the default camera,
// and y grows with northward latitude:
//
//	x = r·cos(lat)·sin(lon)
//	y = r·sin(lat)
//	z = r·cos(lat)·cos(lon)
func Project(coord HeliographicCoordinate, radius float64) Cartesian3D {
	lat := degToRad(coord.LatitudeDeg)
	lon := degToRad(coord.LongitudeDeg)
	return Cartesian3D{
		X: radius * math.Cos(lat) * math.Sin(lon),
		Y: radius * math.Sin(lat),
		Z: radius * math.Cos(lat) * math.Cos(lon),
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
