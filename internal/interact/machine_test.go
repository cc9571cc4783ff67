package interact

import (
	"testing"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/measure"
	"github.com/woozymasta/mapview/internal/transform"

	"gonum.org/v1/gonum/floats/scalar"
)

// fakeSurface lays a 100x100 map out at natural size 200x200 in a 400x400 viewport.
type fakeSurface struct {
	view *transform.Controller
}

func (s fakeSurface) ImageRect() geo.Rect {
	return s.view.Transform().ImageRect(geo.Size{Width: 400, Height: 400}, geo.Size{Width: 200, Height: 200})
}

func (s fakeSurface) Bounds() geo.MapBounds {
	return geo.MapBounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
}

type harness struct {
	view     *transform.Controller
	engine   *measure.Engine
	machine  *Machine
	measured []measure.Measurement
	cleared  int
}

func newHarness(metersPerUnit float64) *harness {
	h := &harness{
		view:   transform.NewController(),
		engine: measure.NewEngine(metersPerUnit),
	}
	h.machine = New(h.view, h.engine, fakeSurface{view: h.view}, Hooks{
		OnMeasured: func(m measure.Measurement) { h.measured = append(h.measured, m) },
		OnCleared:  func() { h.cleared++ },
	})
	return h
}

// screenOf returns the current screen position of a map point.
func (h *harness) screenOf(p geo.Point) geo.ScreenPoint {
	s := fakeSurface{view: h.view}
	return geo.ToScreenPoint(p, s.ImageRect(), s.Bounds())
}

func (h *harness) click(p geo.Point) Result {
	s := h.screenOf(p)
	return h.machine.Handle(Event{Kind: Press, X: s.X, Y: s.Y, Button: ButtonPrimary})
}

func samePoint(a, b geo.Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, 1e-9) && scalar.EqualWithinAbs(a.Y, b.Y, 1e-9)
}

func TestMeasureSequence(t *testing.T) {
	h := newHarness(5)

	if h.machine.State() != Idle {
		t.Fatalf("initial state = %s", h.machine.State())
	}

	h.click(geo.Point{X: 10, Y: 10})
	if h.machine.State() != Measuring {
		t.Fatalf("state after first click = %s, want measuring", h.machine.State())
	}
	if len(h.measured) != 0 {
		t.Fatal("first click must not publish")
	}

	h.click(geo.Point{X: 10, Y: 60})
	if h.machine.State() != Idle {
		t.Fatalf("state after second click = %s, want idle", h.machine.State())
	}
	if len(h.measured) != 1 {
		t.Fatalf("expected one published measurement, got %d", len(h.measured))
	}

	m := h.measured[0]
	if !scalar.EqualWithinAbs(m.DistanceMeters, 250, 1e-9) {
		t.Errorf("distance = %g, want 250", m.DistanceMeters)
	}
	if m.Label() != "250m" {
		t.Errorf("label = %q", m.Label())
	}
	if _, ok := h.engine.Pending(); ok {
		t.Error("pending left behind")
	}
}

func TestPanAndZoomKeepMapPoints(t *testing.T) {
	h := newHarness(1)
	a, b := geo.Point{X: 20, Y: 30}, geo.Point{X: 70, Y: 90}
	h.click(a)
	h.click(b)
	before, _ := h.engine.Measurement()
	screenBefore := h.screenOf(before.Start)

	res := h.machine.Handle(Event{Kind: Press, X: 50, Y: 50, Button: ButtonSecondary})
	if !res.Consumed {
		t.Error("secondary press must suppress the context menu")
	}
	if h.machine.State() != Panning {
		t.Fatalf("state = %s, want panning", h.machine.State())
	}

	h.machine.Handle(Event{Kind: Move, X: 60, Y: 45})
	h.machine.Handle(Event{Kind: Move, X: 80, Y: 20})
	if got := h.view.Transform(); got.TranslateX != 30 || got.TranslateY != -30 {
		t.Errorf("translate = (%g, %g), want (30, -30)", got.TranslateX, got.TranslateY)
	}

	h.machine.Handle(Event{Kind: Release, X: 80, Y: 20, Button: ButtonSecondary})
	if h.machine.State() != Idle {
		t.Fatalf("state after release = %s", h.machine.State())
	}

	h.machine.Handle(Event{Kind: Enter})
	h.machine.Handle(Event{Kind: Scroll, X: 10, Y: 10, DeltaY: -120})
	h.view.ZoomIn()

	after, _ := h.engine.Measurement()
	if after.Start != before.Start || after.End != before.End {
		t.Errorf("map points changed: %+v -> %+v", before, after)
	}

	screenAfter := h.screenOf(after.Start)
	if screenAfter == screenBefore {
		t.Error("screen projection should follow the transform")
	}
}

func TestPanContinuesOutsideViewport(t *testing.T) {
	h := newHarness(1)

	h.machine.Handle(Event{Kind: Enter})
	h.machine.Handle(Event{Kind: Press, X: 100, Y: 100, Button: ButtonSecondary})
	h.machine.Handle(Event{Kind: Leave})

	if h.machine.State() != Panning {
		t.Fatal("leaving the viewport must not cancel a pan")
	}

	h.machine.Handle(Event{Kind: Move, X: -500, Y: 900})
	if got := h.view.Transform(); got.TranslateX != -600 || got.TranslateY != 800 {
		t.Errorf("translate = %+v", got)
	}

	if res := h.machine.Handle(Event{Kind: Scroll, DeltaY: -1}); res.Consumed {
		t.Error("wheel must be ignored while the pointer is outside")
	}
	if s := h.view.Transform().Scale; s != 1 {
		t.Errorf("scale changed to %g outside the viewport", s)
	}

	h.machine.Handle(Event{Kind: Release, X: -500, Y: 900, Button: ButtonPrimary})
	if h.machine.State() != Idle {
		t.Error("releasing any button outside the viewport must end the pan")
	}
}

func TestPanDuringPendingMeasurement(t *testing.T) {
	h := newHarness(1)
	h.click(geo.Point{X: 50, Y: 50})

	h.machine.Handle(Event{Kind: Press, X: 10, Y: 10, Button: ButtonSecondary})
	if res := h.machine.Handle(Event{Kind: Press, X: 200, Y: 200, Button: ButtonPrimary}); res.Changed {
		t.Error("primary press during a pan must be ignored")
	}
	h.machine.Handle(Event{Kind: Move, X: 40, Y: 10})
	h.machine.Handle(Event{Kind: Release, Button: ButtonSecondary})

	if h.machine.State() != Measuring {
		t.Fatalf("pending measurement lost across pan, state = %s", h.machine.State())
	}

	h.click(geo.Point{X: 50, Y: 80})
	m, ok := h.engine.Measurement()
	if !ok || !samePoint(m.Start, geo.Point{X: 50, Y: 50}) || !samePoint(m.End, geo.Point{X: 50, Y: 80}) {
		t.Errorf("measurement after pan = %+v (%v)", m, ok)
	}
	if !scalar.EqualWithinAbs(m.DistanceMeters, 30, 1e-9) {
		t.Errorf("distance = %g, want 30", m.DistanceMeters)
	}
}

func TestWheelZoom(t *testing.T) {
	h := newHarness(1)
	h.machine.Handle(Event{Kind: Enter})

	res := h.machine.Handle(Event{Kind: Scroll, X: 200, Y: 200, DeltaY: -100})
	if !res.Consumed {
		t.Error("wheel over the viewport must not bubble")
	}
	if s := h.view.Transform().Scale; !scalar.EqualWithinAbs(s, 1.1, 1e-12) {
		t.Errorf("scale = %g, want 1.1", s)
	}

	h.machine.Handle(Event{Kind: Scroll, X: 200, Y: 200, DeltaY: 100})
	if s := h.view.Transform().Scale; !scalar.EqualWithinAbs(s, 0.99, 1e-12) {
		t.Errorf("scale = %g, want 0.99", s)
	}
}

func TestClicksOutsideImageIgnored(t *testing.T) {
	h := newHarness(1)

	// image occupies 100..300 in a 400 px viewport
	if res := h.machine.Handle(Event{Kind: Press, X: 20, Y: 20, Button: ButtonPrimary}); res.Changed {
		t.Error("click outside the image must be ignored")
	}
	if h.machine.State() != Idle {
		t.Errorf("state = %s", h.machine.State())
	}

	if res := h.machine.Handle(Event{Kind: Press, X: 150, Y: 150, Button: ButtonMiddle}); res.Changed || res.Consumed {
		t.Error("middle button has no binding")
	}
}

func TestEscapeClears(t *testing.T) {
	h := newHarness(1)
	h.click(geo.Point{X: 1, Y: 1})
	h.click(geo.Point{X: 2, Y: 2})
	h.click(geo.Point{X: 3, Y: 3})

	res := h.machine.Handle(Event{Kind: KeyDown, Key: KeyEscape})
	if !res.Consumed {
		t.Error("escape should be consumed")
	}
	if h.cleared != 1 {
		t.Errorf("OnCleared called %d times", h.cleared)
	}
	if _, ok := h.engine.Measurement(); ok {
		t.Error("measurement survived escape")
	}
	if _, ok := h.engine.Pending(); ok {
		t.Error("pending survived escape")
	}
	if len(h.engine.Markers()) != 0 {
		t.Error("markers survived escape")
	}
	if h.machine.State() != Idle {
		t.Errorf("state = %s", h.machine.State())
	}
}

func TestReadout(t *testing.T) {
	h := newHarness(1)

	h.machine.Handle(Event{Kind: Move, X: 200, Y: 200})
	if _, ok := h.machine.Readout(); ok {
		t.Error("readout must be hidden before the pointer enters")
	}

	h.machine.Handle(Event{Kind: Enter})
	h.machine.Handle(Event{Kind: Move, X: 200, Y: 200})
	p, ok := h.machine.Readout()
	if !ok || !samePoint(p, geo.Point{X: 50, Y: 50}) {
		t.Errorf("readout = %+v (%v), want center", p, ok)
	}

	h.machine.Handle(Event{Kind: Move, X: 5, Y: 5})
	if _, ok := h.machine.Readout(); ok {
		t.Error("readout must be hidden off the image")
	}

	h.machine.Handle(Event{Kind: Move, X: 200, Y: 200})
	h.machine.Handle(Event{Kind: Leave})
	if _, ok := h.machine.Readout(); ok {
		t.Error("readout must be hidden after leaving")
	}
}

func TestParseKind(t *testing.T) {
	for k := Press; k <= KeyDown; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("drag"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
