// Package transform owns the pan/zoom view transform applied to the map image.
package transform

import (
	"math"

	"github.com/woozymasta/mapview/internal/geo"
)

// Scale limits and zoom factors.
const (
	MinScale     = 0.1
	MaxScale     = 5.0
	ZoomStep     = 1.2 // zoom buttons
	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9
	FitMargin    = 0.9 // share of the container used by fit-to-screen
)

// ViewTransform is the affine mapping applied to the displayed image.
type ViewTransform struct {
	Scale      float64 `json:"scale" yaml:"scale"`
	TranslateX float64 `json:"translate_x" yaml:"translate_x"`
	TranslateY float64 `json:"translate_y" yaml:"translate_y"`
}

// Identity returns the untransformed view.
func Identity() ViewTransform {
	return ViewTransform{Scale: 1}
}

// ImageRect returns the displayed image rectangle inside the viewport.
// The image is laid out at natural size centered in the container,
// then scaled about its own center and translated.
func (t ViewTransform) ImageRect(container, natural geo.Size) geo.Rect {
	if container.Empty() || natural.Empty() {
		return geo.Rect{}
	}

	w := natural.Width * t.Scale
	h := natural.Height * t.Scale
	cx := container.Width/2 + t.TranslateX
	cy := container.Height/2 + t.TranslateY

	return geo.Rect{Left: cx - w/2, Top: cy - h/2, Width: w, Height: h}
}

// Controller mutates a ViewTransform while keeping the scale in range.
// It never touches measurement state.
type Controller struct {
	t ViewTransform
}

// NewController creates a controller at the identity transform.
func NewController() *Controller {
	return &Controller{t: Identity()}
}

// Transform returns the current transform.
func (c *Controller) Transform() ViewTransform {
	return c.t
}

// ZoomIn multiplies the scale by ZoomStep.
func (c *Controller) ZoomIn() {
	c.ZoomBy(ZoomStep)
}

// ZoomOut divides the scale by ZoomStep.
func (c *Controller) ZoomOut() {
	c.ZoomBy(1 / ZoomStep)
}

// ZoomAt applies one wheel notch in the given direction.
func (c *Controller) ZoomAt(in bool) {
	if in {
		c.ZoomBy(WheelZoomIn)
		return
	}
	c.ZoomBy(WheelZoomOut)
}

// ZoomBy multiplies the scale by factor, clamped to [MinScale, MaxScale].
func (c *Controller) ZoomBy(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	c.t.Scale = clampScale(c.t.Scale * factor)
}

// Reset returns to scale 1 with no translation.
func (c *Controller) Reset() {
	c.t = Identity()
}

// FitToScreen scales the natural image to fit inside the container with a margin
// and recenters it. It reports false and leaves the transform alone when
// either size is not known yet.
func (c *Controller) FitToScreen(container, natural geo.Size) bool {
	if container.Empty() || natural.Empty() {
		return false
	}

	scale := math.Min(container.Width/natural.Width, container.Height/natural.Height) * FitMargin
	c.t = ViewTransform{Scale: clampScale(scale)}

	return true
}

// PanBy shifts the translation. Panning is unbounded; reset and fit bring the content back.
func (c *Controller) PanBy(dx, dy float64) {
	c.t.TranslateX += dx
	c.t.TranslateY += dy
}

// PanTo sets the translation directly.
func (c *Controller) PanTo(x, y float64) {
	c.t.TranslateX = x
	c.t.TranslateY = y
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}

	return s
}
