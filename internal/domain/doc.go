// Package domain models NASA DONKI solar flare records and the pure
// transforms that place the most significant flare on a sphere.
//
// # Data Source
//
// Flare records come from the DONKI (Database Of Notifications, Knowledge,
// Information) FLR endpoint, https://api.nasa.gov/DONKI/FLR, queried by a
// startDate/endDate pair in YYYY-MM-DD form. The response is a JSON array of
// flare objects, or an empty array (sometimes an empty body) when nothing
// was observed in the range.
//
// # DONKI Conventions
//
// Source location format:
//
//	"<N|S><deg><E|W><deg>"  →  e.g. "S18W89"
//	means 18° south, 89° west of central meridian, as seen from Earth.
//	Tokens may appear in either order with arbitrary separators; each is
//	found by an independent substring scan. See [LookupLocation].
//	Longitude is negative to the west (heliographic convention).
//	Flares observed behind or at the limb sometimes carry an empty location.
//
// Class format:
//
//	"<Letter><Number>"  →  e.g. "X8.7", "M1.0", "C3"
//	Letter is the GOES X-ray class, ordered A < B < C < M < X, each a
//	decade of peak flux. Number is the sub-grade within the class.
//	See [ParseFlareClass].
//
// Timestamps:
//
//	"2024-05-14T16:46Z" in UTC, minute precision. endTime may be null.
//
// # Severity and Intensity
//
// Severity score is the class weight times the sub-grade, with weights
// A:1 B:10 C:100 M:1000 X:10000. This is a log-ish ordering, not a flux:
// an X1 (10000) outranks an M9.9 (9900). Unparseable classes score 0.
//
// Rendering intensity is a per-class base (A:0.3 B:0.5 C:1 M:2 X:4) scaled
// by (1 + subgrade/5). Unparseable classes render at intensity 1.
//
// # Geometry
//
// [Project] maps (lat, lon) onto a sphere so that (0°, 0°) faces the default
// camera at (0, 0, r) and north is +y. It is a view convention only.
package domain
