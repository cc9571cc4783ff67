// Package geo handles map-space geometry, screen-space geometry and the conversions between them.
package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when a bounds rectangle has no positive area.
var ErrInvalidBounds = errors.New("invalid map bounds")

// Point is a coordinate in map units. Y grows upward.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ScreenPoint is a pixel coordinate relative to the viewport. Y grows downward.
type ScreenPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// MapBounds is the declared extent of a map in map units.
type MapBounds struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// NewBounds validates and returns a MapBounds.
func NewBounds(minX, minY, maxX, maxY float64) (MapBounds, error) {
	b := MapBounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	if !b.Valid() {
		return MapBounds{}, fmt.Errorf("%w: [%g,%g]-[%g,%g]", ErrInvalidBounds, minX, minY, maxX, maxY)
	}

	return b, nil
}

// Valid reports whether both axes have a positive extent.
func (b MapBounds) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Width returns the X extent.
func (b MapBounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the Y extent.
func (b MapBounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether p lies inside the bounds, edges included.
func (b MapBounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Empty reports whether the rectangle has not been laid out yet.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() &&
		y >= r.Top && y <= r.Bottom()
}

// Intersects reports whether two rectangles overlap with positive area.
// Touching edges do not count as overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right() && o.Left < r.Right() &&
		r.Top < o.Bottom() && o.Top < r.Bottom()
}
