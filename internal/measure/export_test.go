package measure

import (
	"math"
	"testing"

	"github.com/woozymasta/mapview/internal/geo"
)

func TestFeatureCollection(t *testing.T) {
	b := geo.MapBounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	m := NewEngine(5).Restore(geo.Point{X: 10, Y: 10}, geo.Point{X: 10, Y: 60})

	fc := FeatureCollection(m, b, false)
	if fc.Type != "FeatureCollection" || len(fc.Features) != 3 {
		t.Fatalf("unexpected collection %+v", fc)
	}

	line := fc.Features[2]
	if line.Geometry.Type != "LineString" {
		t.Errorf("third feature = %s, want LineString", line.Geometry.Type)
	}
	coords, ok := line.Geometry.Coordinates.([][]float64)
	if !ok || len(coords) != 2 || coords[1][1] != 60 {
		t.Errorf("line coordinates = %v", line.Geometry.Coordinates)
	}
	if line.Properties["label"] != "250m" {
		t.Errorf("label = %v", line.Properties["label"])
	}

	projected := FeatureCollection(m, b, true)
	start := projected.Features[0].Geometry.Coordinates.([]float64)
	if math.Abs(start[0]+144) > 1e-9 {
		t.Errorf("projected lon = %g, want -144", start[0])
	}
}
