package scene

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
)

// earthRadius is the sphere radius of the Web Mercator projection, in meters.
const earthRadius = 6378137.0

// resolution returns meters per pixel at zoom for the given tile size.
func resolution(zoom, tileSize int) float64 {
	return 2 * math.Pi * earthRadius / (float64(tileSize) * math.Exp2(float64(zoom)))
}

// toMercator projects a coordinate to Web Mercator meters.
func toMercator(ll mvcmap.LatLng) orb.Point {
	return project.WGS84.ToMercator(orb.Point{ll.Lng, ll.Lat})
}

// fromMercator unprojects Web Mercator meters to a coordinate.
func fromMercator(p orb.Point) mvcmap.LatLng {
	ll := project.Mercator.ToWGS84(p)
	return mvcmap.LatLng{Lat: ll.Lat(), Lng: ll.Lon()}
}

// viewBounds returns the geographic bounds of a size-pixel viewport centered
// on center at zoom.
func viewBounds(center mvcmap.LatLng, zoom int, size mvcmap.Size, tileSize int) mvcmap.Bounds {
	res := resolution(zoom, tileSize)
	c := toMercator(center)
	halfW := float64(size.Width) / 2 * res
	halfH := float64(size.Height) / 2 * res

	// Longitude is linear in Mercator x; compute it directly so views wider
	// than the world are not folded back by the projection.
	west := center.Lng - halfW/(math.Pi*earthRadius)*180
	east := center.Lng + halfW/(math.Pi*earthRadius)*180

	sw := fromMercator(orb.Point{c[0], c[1] - halfH})
	ne := fromMercator(orb.Point{c[0], c[1] + halfH})
	return mvcmap.NewBounds(sw.Lat, west, ne.Lat, east)
}

// pixelOffset returns the screen offset in pixels from a to b at zoom.
func pixelOffset(a, b mvcmap.LatLng, zoom, tileSize int) (dx, dy float64) {
	res := resolution(zoom, tileSize)
	pa, pb := toMercator(a), toMercator(b)

	dLng := b.Lng - a.Lng
	if dLng > 180 {
		dLng -= 360
	} else if dLng < -180 {
		dLng += 360
	}
	dx = dLng / 180 * math.Pi * earthRadius / res
	dy = (pa[1] - pb[1]) / res // screen y grows southward
	return dx, dy
}

// offsetBy moves center by dx, dy pixels at zoom.
func offsetBy(center mvcmap.LatLng, dx, dy float64, zoom, tileSize int) mvcmap.LatLng {
	res := resolution(zoom, tileSize)
	c := toMercator(center)
	moved := fromMercator(orb.Point{c[0], c[1] - dy*res})

	lng := center.Lng + dx*res/(math.Pi*earthRadius)*180
	lng = math.Remainder(lng, 360)
	return mvcmap.LatLng{Lat: moved.Lat, Lng: lng}
}
