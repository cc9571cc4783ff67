// Package share encodes a measurement's endpoints into the page URL query and back.
//
// The query string is the only persisted viewer state:
//
//	?from=<x>-<y>&to=<x>-<y>
//
// with coordinates rounded to whole map units. Rounding never leaves the map
// bounds, so a link always decodes on the map that produced it.
// The web client in assets/script.js applies the same rounding.
package share

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/woozymasta/mapview/internal/geo"
)

// Query parameter names.
const (
	ParamFrom = "from"
	ParamTo   = "to"
)

// State is the shareable projection of a measurement.
type State struct {
	From geo.Point `json:"from" yaml:"from"`
	To   geo.Point `json:"to" yaml:"to"`
}

// Rounded returns the state with both endpoints rounded to whole map units inside b.
func (s State) Rounded(b geo.MapBounds) State {
	return State{From: roundPoint(s.From, b), To: roundPoint(s.To, b)}
}

// Encode returns the query for a measurement between from and to on a map with bounds b.
func Encode(from, to geo.Point, b geo.MapBounds) url.Values {
	q := url.Values{}
	q.Set(ParamFrom, formatPoint(from, b))
	q.Set(ParamTo, formatPoint(to, b))
	return q
}

// Decode parses from/to out of a query and validates them against the map bounds.
// Anything missing, unparseable or out of bounds reports false; there is no partial result.
func Decode(q url.Values, b geo.MapBounds) (State, bool) {
	if !b.Valid() {
		return State{}, false
	}

	from, ok := parsePoint(q.Get(ParamFrom))
	if !ok || !b.Contains(from) {
		return State{}, false
	}

	to, ok := parsePoint(q.Get(ParamTo))
	if !ok || !b.Contains(to) {
		return State{}, false
	}

	return State{From: from, To: to}, true
}

// DecodeURL is Decode over the query of a full URL.
func DecodeURL(rawURL string, b geo.MapBounds) (State, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return State{}, false
	}

	return Decode(u.Query(), b)
}

// WithState replaces the whole query of rawURL with the encoded state.
func WithState(rawURL string, s State, b geo.MapBounds) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	u.RawQuery = Encode(s.From, s.To, b).Encode()
	return u.String(), nil
}

// Cleared removes the query from rawURL entirely.
func Cleared(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	u.RawQuery = ""
	u.ForceQuery = false
	return u.String(), nil
}

func formatPoint(p geo.Point, b geo.MapBounds) string {
	r := roundPoint(p, b)
	return strconv.FormatFloat(r.X, 'f', 0, 64) + "-" + strconv.FormatFloat(r.Y, 'f', 0, 64)
}

func parsePoint(v string) (geo.Point, bool) {
	parts := strings.Split(v, "-")
	if len(parts) != 2 {
		return geo.Point{}, false
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return geo.Point{}, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return geo.Point{}, false
	}

	return geo.Point{X: x, Y: y}, true
}

// roundPoint rounds to whole units, pulling a value that rounds past an edge
// back to the nearest whole unit inside it. Without valid bounds, or when no
// whole unit fits between the edges, it rounds plainly.
func roundPoint(p geo.Point, b geo.MapBounds) geo.Point {
	if !b.Valid() {
		return geo.Point{X: math.Round(p.X), Y: math.Round(p.Y)}
	}
	return geo.Point{X: roundInto(p.X, b.MinX, b.MaxX), Y: roundInto(p.Y, b.MinY, b.MaxY)}
}

func roundInto(v, lo, hi float64) float64 {
	r := math.Round(v)
	switch {
	case r < lo:
		if c := math.Ceil(lo); c <= hi {
			return c
		}
	case r > hi:
		if f := math.Floor(hi); f >= lo {
			return f
		}
	}
	return r
}
