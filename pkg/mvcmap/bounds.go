package mvcmap

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Bounds is a geographic viewport rectangle in WGS-84 coordinates.
//
// Bounds may cross the antimeridian: a rectangle whose west edge is east of
// its east edge wraps around longitude ±180.
type Bounds struct {
	rect s2.Rect
}

// NewBounds returns the rectangle between the given edges in decimal degrees.
//
// Latitudes are clamped to ±90. Longitudes are wrapped into ±180; when west
// ends up greater than east the rectangle crosses the antimeridian. A span of
// 360 degrees or more covers every longitude.
//
// Example:
//
//	viewport := mvcmap.NewBounds(42.3, -71.1, 42.4, -71.0)
//	viewport.Contains(42.35, -71.05) // true
func NewBounds(south, west, north, east float64) Bounds {
	if south > north {
		south, north = north, south
	}
	lat := r1.Interval{
		Lo: radians(math.Max(south, -90)),
		Hi: radians(math.Min(north, 90)),
	}

	lng := s1.FullInterval()
	if east-west < 360 {
		lng = s1.IntervalFromEndpoints(radians(wrapLng(west)), radians(wrapLng(east)))
	}

	return Bounds{rect: s2.Rect{Lat: lat, Lng: lng}}
}

// Pad returns the bounds expanded by ratio of their height and width in each
// direction, so Pad(0.5) doubles both dimensions.
func (b Bounds) Pad(ratio float64) Bounds {
	if b.rect.IsEmpty() || ratio == 0 {
		return b
	}
	size := b.rect.Size()
	lat := b.rect.Lat.Expanded(size.Lat.Radians() * ratio)
	lng := b.rect.Lng.Expanded(size.Lng.Radians() * ratio)
	if lat.IsEmpty() || lng.IsEmpty() {
		return Bounds{rect: s2.EmptyRect()}
	}
	lat = lat.Intersection(r1.Interval{Lo: -math.Pi / 2, Hi: math.Pi / 2})
	return Bounds{rect: s2.Rect{Lat: lat, Lng: lng}}
}

// Contains returns true if the point (lat, lng) is within the bounds.
//
// Invalid coordinates are never contained.
func (b Bounds) Contains(lat, lng float64) bool {
	return b.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

// IsEmpty reports whether the bounds contain no points.
func (b Bounds) IsEmpty() bool { return b.rect.IsEmpty() }

// CrossesAntimeridian reports whether the bounds wrap around longitude ±180.
func (b Bounds) CrossesAntimeridian() bool { return b.rect.Lng.IsInverted() }

// South returns the southern edge in degrees.
func (b Bounds) South() float64 { return s1.Angle(b.rect.Lat.Lo).Degrees() }

// North returns the northern edge in degrees.
func (b Bounds) North() float64 { return s1.Angle(b.rect.Lat.Hi).Degrees() }

// West returns the western edge in degrees.
func (b Bounds) West() float64 { return s1.Angle(b.rect.Lng.Lo).Degrees() }

// East returns the eastern edge in degrees.
func (b Bounds) East() float64 { return s1.Angle(b.rect.Lng.Hi).Degrees() }

// String returns the edges as "south,west,north,east".
func (b Bounds) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.South(), b.West(), b.North(), b.East())
}

// MarshalJSON encodes the bounds as an object with south, west, north and east edges.
func (b Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		South float64 `json:"south"`
		West  float64 `json:"west"`
		North float64 `json:"north"`
		East  float64 `json:"east"`
	}{b.South(), b.West(), b.North(), b.East()})
}

// searchRects converts the bounds to R-tree query rectangles.
// Bounds crossing the antimeridian need one rectangle per side.
func (b Bounds) searchRects() []rtreego.Rect {
	if b.rect.IsEmpty() {
		return nil
	}
	south, north := b.South(), b.North()
	switch {
	case b.rect.Lng.IsFull():
		return []rtreego.Rect{degreeRect(south, -180, north, 180)}
	case b.rect.Lng.IsInverted():
		return []rtreego.Rect{
			degreeRect(south, b.West(), north, 180),
			degreeRect(south, -180, north, b.East()),
		}
	default:
		return []rtreego.Rect{degreeRect(south, b.West(), north, b.East())}
	}
}

// degreeRect builds an R-tree query rectangle from edges in degrees.
// Touching rectangles do not intersect in the R-tree, so the query is
// widened by searchMargin on every side; Contains filters the candidates.
func degreeRect(south, west, north, east float64) rtreego.Rect {
	point := rtreego.Point{west - searchMargin, south - searchMargin}
	lengths := []float64{
		east - west + 2*searchMargin,
		north - south + 2*searchMargin,
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// searchMargin pads R-tree rectangles in degrees.
const searchMargin = 1e-7

func radians(degrees float64) float64 {
	return (s1.Angle(degrees) * s1.Degree).Radians()
}

func wrapLng(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	return math.Remainder(lng, 360)
}
