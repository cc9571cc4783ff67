// Package interact turns raw pointer, wheel and key input into pan, zoom and measurement actions.
package interact

import (
	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/measure"
	"github.com/woozymasta/mapview/internal/transform"
)

// State is the interaction mode of the viewer.
type State int

// Interaction states. Measuring means one endpoint is placed and the second is awaited.
const (
	Idle State = iota
	Panning
	Measuring
)

// String returns a lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case Measuring:
		return "measuring"
	default:
		return "unknown"
	}
}

// Surface exposes the layout the machine converts pointer positions against.
type Surface interface {
	// ImageRect is the currently displayed image rectangle; empty until laid out.
	ImageRect() geo.Rect
	Bounds() geo.MapBounds
}

// Hooks are called after state changes that must be published outside the machine.
type Hooks struct {
	OnMeasured func(measure.Measurement)
	OnCleared  func()
}

// Result tells the host how an event was handled.
type Result struct {
	// Consumed asks the host to suppress the native default
	// (context menu for the secondary button, page scroll for the wheel).
	Consumed bool
	// Changed reports that the view or the measurement state moved.
	Changed bool
}

type dragOrigin struct {
	pointerX, pointerY     float64
	translateX, translateY float64
}

// Machine arbitrates input between the transform controller and the measurement engine.
// It is driven from a single event loop and holds no locks.
type Machine struct {
	view    *transform.Controller
	engine  *measure.Engine
	surface Surface
	hooks   Hooks

	origin    dragOrigin
	cursor    geo.ScreenPoint
	panning   bool
	hovering  bool
	hasCursor bool
}

// New creates an idle machine.
func New(view *transform.Controller, engine *measure.Engine, surface Surface, hooks Hooks) *Machine {
	return &Machine{
		view:    view,
		engine:  engine,
		surface: surface,
		hooks:   hooks,
	}
}

// State returns the current interaction state.
func (m *Machine) State() State {
	if m.panning {
		return Panning
	}
	if _, ok := m.engine.Pending(); ok {
		return Measuring
	}

	return Idle
}

// Hovering reports whether the pointer is over the viewport.
func (m *Machine) Hovering() bool {
	return m.hovering
}

// Readout returns the map point under the pointer while it hovers over the image.
// The point is derived from the last pointer position and the current layout on every call.
func (m *Machine) Readout() (geo.Point, bool) {
	if !m.hovering || !m.hasCursor {
		return geo.Point{}, false
	}

	img := m.surface.ImageRect()
	if img.Empty() || !img.Contains(m.cursor.X, m.cursor.Y) {
		return geo.Point{}, false
	}

	return geo.ToMapPoint(m.cursor.X, m.cursor.Y, img, m.surface.Bounds()), true
}

// Handle applies one input event.
func (m *Machine) Handle(ev Event) Result {
	switch ev.Kind {
	case Press:
		return m.press(ev)
	case Move:
		return m.move(ev)
	case Release:
		return m.release()
	case Enter:
		m.hovering = true
		return Result{Changed: true}
	case Leave:
		// an active pan keeps going on document-level moves
		m.hovering = false
		return Result{Changed: true}
	case Scroll:
		return m.scroll(ev)
	case KeyDown:
		if ev.Key == KeyEscape {
			m.Clear()
			return Result{Consumed: true, Changed: true}
		}
	}

	return Result{}
}

// Clear discards markers, the measurement and any pending start, then publishes the clear.
func (m *Machine) Clear() {
	m.engine.Clear()
	if m.hooks.OnCleared != nil {
		m.hooks.OnCleared()
	}
}

// Cancel ends an active pan without further transform changes.
func (m *Machine) Cancel() {
	m.panning = false
}

func (m *Machine) press(ev Event) Result {
	m.hovering = true
	m.trackCursor(ev)

	switch ev.Button {
	case ButtonSecondary:
		t := m.view.Transform()
		m.origin = dragOrigin{
			pointerX:   ev.X,
			pointerY:   ev.Y,
			translateX: t.TranslateX,
			translateY: t.TranslateY,
		}
		m.panning = true
		return Result{Consumed: true, Changed: true}

	case ButtonPrimary:
		if m.panning {
			return Result{}
		}

		img := m.surface.ImageRect()
		if img.Empty() || !img.Contains(ev.X, ev.Y) {
			return Result{}
		}

		p := geo.ToMapPoint(ev.X, ev.Y, img, m.surface.Bounds())
		if done, ok := m.engine.Click(p); ok && m.hooks.OnMeasured != nil {
			m.hooks.OnMeasured(done)
		}
		return Result{Changed: true}
	}

	return Result{}
}

func (m *Machine) move(ev Event) Result {
	m.trackCursor(ev)

	if !m.panning {
		return Result{Changed: m.hovering}
	}

	m.view.PanTo(
		m.origin.translateX+ev.X-m.origin.pointerX,
		m.origin.translateY+ev.Y-m.origin.pointerY,
	)

	return Result{Changed: true}
}

func (m *Machine) release() Result {
	if !m.panning {
		return Result{}
	}

	m.panning = false
	return Result{Changed: true}
}

func (m *Machine) scroll(ev Event) Result {
	if !m.hovering || ev.DeltaY == 0 {
		return Result{}
	}

	m.trackCursor(ev)
	m.view.ZoomAt(ev.DeltaY < 0)

	return Result{Consumed: true, Changed: true}
}

func (m *Machine) trackCursor(ev Event) {
	m.cursor = geo.ScreenPoint{X: ev.X, Y: ev.Y}
	m.hasCursor = true
}
