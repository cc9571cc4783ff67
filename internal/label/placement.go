// Package label places the floating marker and distance labels so they do not cover each other.
//
// At most two labels coexist, so a fixed three-step fallback is enough.
// Anything with more labels needs a real constraint-based layout instead.
package label

import "github.com/woozymasta/mapview/internal/geo"

// Gap is the distance in pixels between an anchor and its label.
const Gap = 8.0

// Placement names the slot a label ended up in.
type Placement int

// Placement slots in fallback order.
const (
	RightAbove Placement = iota
	LeftAbove
	Below
)

// String returns a CSS-friendly slot name.
func (p Placement) String() string {
	switch p {
	case RightAbove:
		return "right-above"
	case LeftAbove:
		return "left-above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// Box returns the label rectangle for an anchor in the given slot.
func Box(anchor geo.ScreenPoint, size geo.Size, p Placement) geo.Rect {
	r := geo.Rect{Width: size.Width, Height: size.Height}

	switch p {
	case LeftAbove:
		r.Left = anchor.X - Gap - size.Width
		r.Top = anchor.Y - Gap - size.Height
	case Below:
		r.Left = anchor.X + Gap
		r.Top = anchor.Y + Gap
	default:
		r.Left = anchor.X + Gap
		r.Top = anchor.Y - Gap - size.Height
	}

	return r
}

// Resolve picks the first slot whose box does not overlap avoid:
// right-above, then left-above, then below. Below is used even if it still overlaps.
// An empty avoid rectangle keeps the default slot.
func Resolve(anchor geo.ScreenPoint, size geo.Size, avoid geo.Rect) (geo.Rect, Placement) {
	if avoid.Empty() {
		return Box(anchor, size, RightAbove), RightAbove
	}

	for _, p := range []Placement{RightAbove, LeftAbove} {
		if r := Box(anchor, size, p); !r.Intersects(avoid) {
			return r, p
		}
	}

	return Box(anchor, size, Below), Below
}

// DistanceBox returns the distance label rectangle, centered horizontally
// over the midpoint of the measured segment and sitting just above it.
func DistanceBox(a, b geo.ScreenPoint, size geo.Size) geo.Rect {
	midX := (a.X + b.X) / 2
	midY := (a.Y + b.Y) / 2

	return geo.Rect{
		Left:   midX - size.Width/2,
		Top:    midY - Gap - size.Height,
		Width:  size.Width,
		Height: size.Height,
	}
}
