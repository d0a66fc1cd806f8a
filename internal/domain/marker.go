package domain

// DefaultSunRadius is the sphere radius used when none is configured.
const DefaultSunRadius = 1.0

// Marker is everything a renderer needs to draw a flare on the sphere.
type Marker struct {
	Coordinate HeliographicCoordinate `json:"coordinate"`
	Position   Cartesian3D            `json:"position"`
	Intensity  float64                `json:"intensity"`
}

// MarkerFor derives the marker for a flare on a sphere of the given radius.
// Records without a source location get no marker (ok == false); a present
// but malformed location falls back to (0°, 0°).
func MarkerFor(f FlareRecord, radius float64) (Marker, bool) {
	if !f.HasLocation() {
		return Marker{}, false
	}
	coord := ParseLocation(f.SourceLocation)
	return Marker{
		Coordinate: coord,
		Position:   Project(coord, radius),
		Intensity:  Intensity(f.ClassType),
	}, true
}
