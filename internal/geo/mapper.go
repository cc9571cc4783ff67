package geo

// ToMapPoint converts a viewport pixel into map units using the image's
// currently displayed rectangle. The image Y axis is inverted against the map Y axis.
// An image that has not been laid out yet yields the zero Point.
func ToMapPoint(px, py float64, img Rect, b MapBounds) Point {
	if img.Empty() {
		return Point{}
	}

	relX := (px - img.Left) / img.Width
	relY := (py - img.Top) / img.Height

	return Point{
		X: b.MinX + relX*b.Width(),
		Y: b.MaxY - relY*b.Height(),
	}
}

// ToScreenPoint is the inverse of ToMapPoint.
// The displayed rectangle already carries scale and translation,
// so no view transform is needed here.
func ToScreenPoint(p Point, img Rect, b MapBounds) ScreenPoint {
	if img.Empty() || !b.Valid() {
		return ScreenPoint{}
	}

	relX := (p.X - b.MinX) / b.Width()
	relY := (b.MaxY - p.Y) / b.Height()

	return ScreenPoint{
		X: img.Left + relX*img.Width,
		Y: img.Top + relY*img.Height,
	}
}
