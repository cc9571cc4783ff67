package measure

import "github.com/woozymasta/mapview/internal/geo"

// FeatureCollection exports a measurement as two endpoint points and the segment between them.
// With lonLat set, positions are projected to WGS84 over the map bounds;
// otherwise they stay in raw map units.
func FeatureCollection(m Measurement, b geo.MapBounds, lonLat bool) geo.GeoJSONFeatureCollection {
	pos := func(p geo.Point) []float64 {
		if lonLat {
			lon, lat := geo.ToLonLat(p, b)
			return []float64{lon, lat}
		}
		return []float64{p.X, p.Y}
	}

	start, end := pos(m.Start), pos(m.End)

	return geo.GeoJSONFeatureCollection{
		Type: "FeatureCollection",
		Features: []geo.GeoJSONFeature{
			geo.PointFeature(start, map[string]interface{}{"role": "start"}),
			geo.PointFeature(end, map[string]interface{}{"role": "end"}),
			geo.LineFeature([][]float64{start, end}, map[string]interface{}{
				"distance_meters": m.DistanceMeters,
				"label":           m.Label(),
			}),
		},
	}
}
