package geo

import "math"

// MaxLat is the latitude limit of the Web Mercator projection.
const MaxLat = 85.05112878

// ToLonLat converts a map point to WGS84 (Lon/Lat) using a Mercator projection
// stretched over the map bounds, so that exported features line up with
// slippy-map clients that treat the whole image as the world.
//
// It maps X over [MinX, MaxX] to the longitude range [-180, 180]
// and applies an inverse Mercator projection for latitude.
func ToLonLat(p Point, b MapBounds) (lon, lat float64) {
	// x: [min..max] -> lon: [-180..180]
	lon = (p.X-b.MinX)*(360.0/b.Width()) - 180.0

	// y: [min..max] -> mercatorY: [-PI..PI]
	mercatorY := (p.Y-b.MinY)*((2.0*math.Pi)/b.Height()) - math.Pi

	// Inverse Mercator projection
	latRad := (2.0 * math.Atan(math.Exp(mercatorY))) - (math.Pi * 0.5)
	lat = latRad * (180.0 / math.Pi)

	if lat > MaxLat {
		lat = MaxLat
	} else if lat < -MaxLat {
		lat = -MaxLat
	}

	return lon, lat
}
