// Package measure holds the two-click distance measurement state.
//
// All stored positions are map-space points. Nothing in this package knows
// about the view transform, so measurements survive any pan or zoom.
package measure

import (
	"github.com/woozymasta/mapview/internal/geo"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMetersPerUnit is used when a map does not declare its own scale.
const DefaultMetersPerUnit = 1.0

// Marker is a visual anchor at a map point.
type Marker struct {
	ID    int       `json:"id" yaml:"id"`
	Point geo.Point `json:"point" yaml:"point"`
}

// Measurement is a completed pair of endpoints with the derived distance.
type Measurement struct {
	ID             int       `json:"id" yaml:"id"`
	Start          geo.Point `json:"start" yaml:"start"`
	End            geo.Point `json:"end" yaml:"end"`
	DistanceMeters float64   `json:"distance_meters" yaml:"distance_meters"`
}

// Label returns the formatted distance.
func (m Measurement) Label() string {
	return FormatDistance(m.DistanceMeters)
}

// Pending is the state between the first and the second click.
type Pending struct {
	Start    geo.Point `json:"start" yaml:"start"`
	MarkerID int       `json:"marker_id" yaml:"marker_id"`
}

// Engine holds at most one pending or one completed measurement, never both.
type Engine struct {
	measurement   *Measurement
	pending       *Pending
	markers       []Marker
	metersPerUnit float64
	nextID        int
}

// NewEngine creates an empty engine. Non-positive scales fall back to DefaultMetersPerUnit.
func NewEngine(metersPerUnit float64) *Engine {
	if metersPerUnit <= 0 {
		metersPerUnit = DefaultMetersPerUnit
	}

	return &Engine{metersPerUnit: metersPerUnit}
}

// MetersPerUnit returns the map scale used for distances.
func (e *Engine) MetersPerUnit() float64 {
	return e.metersPerUnit
}

// Click advances the click sequence with a map point.
// The first click discards any previous measurement and leaves a pending start;
// the second click completes the measurement and returns it with true.
func (e *Engine) Click(p geo.Point) (Measurement, bool) {
	if e.pending == nil {
		marker := e.newMarker(p)
		e.measurement = nil
		e.markers = []Marker{marker}
		e.pending = &Pending{Start: p, MarkerID: marker.ID}
		return Measurement{}, false
	}

	start := e.pending.Start
	first := Marker{ID: e.pending.MarkerID, Point: start}
	m := e.complete(first, e.newMarker(p))

	return m, true
}

// Restore installs a completed measurement directly, bypassing the pending state.
// Callers validate the endpoints against the map bounds first.
func (e *Engine) Restore(from, to geo.Point) Measurement {
	return e.complete(e.newMarker(from), e.newMarker(to))
}

// Clear drops markers, the measurement and any pending start in one step.
func (e *Engine) Clear() {
	e.markers = nil
	e.pending = nil
	e.measurement = nil
}

// Markers returns a copy of the current markers.
func (e *Engine) Markers() []Marker {
	out := make([]Marker, len(e.markers))
	copy(out, e.markers)
	return out
}

// Pending returns the pending start, if any.
func (e *Engine) Pending() (Pending, bool) {
	if e.pending == nil {
		return Pending{}, false
	}
	return *e.pending, true
}

// Measurement returns the completed measurement, if any.
func (e *Engine) Measurement() (Measurement, bool) {
	if e.measurement == nil {
		return Measurement{}, false
	}
	return *e.measurement, true
}

// complete replaces all state with a finished measurement between two markers.
func (e *Engine) complete(a, b Marker) Measurement {
	e.nextID++
	m := Measurement{
		ID:             e.nextID,
		Start:          a.Point,
		End:            b.Point,
		DistanceMeters: Distance(a.Point, b.Point, e.metersPerUnit),
	}

	e.markers = []Marker{a, b}
	e.pending = nil
	e.measurement = &m

	return m
}

func (e *Engine) newMarker(p geo.Point) Marker {
	e.nextID++
	return Marker{ID: e.nextID, Point: p}
}

// Distance returns the Euclidean distance between two map points in meters.
func Distance(a, b geo.Point, metersPerUnit float64) float64 {
	d := r2.Sub(r2.Vec{X: b.X, Y: b.Y}, r2.Vec{X: a.X, Y: a.Y})
	return r2.Norm(d) * metersPerUnit
}
