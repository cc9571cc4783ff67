package viewer

import (
	"math"
	"strconv"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/interact"
	"github.com/woozymasta/mapview/internal/label"
	"github.com/woozymasta/mapview/internal/transform"
)

// DefaultLabelSize approximates a 12px sans-serif label with padding.
func DefaultLabelSize(text string) geo.Size {
	return geo.Size{Width: float64(len(text))*7 + 12, Height: 20}
}

// MarkerView is a marker projected for one frame.
type MarkerView struct {
	Text      string          `json:"text" yaml:"text"`
	Placement string          `json:"placement" yaml:"placement"`
	Map       geo.Point       `json:"map" yaml:"map"`
	Screen    geo.ScreenPoint `json:"screen" yaml:"screen"`
	Label     geo.Rect        `json:"label" yaml:"label"`
	ID        int             `json:"id" yaml:"id"`
}

// MeasurementView is the measurement projected for one frame.
type MeasurementView struct {
	Text           string          `json:"text" yaml:"text"`
	Start          geo.ScreenPoint `json:"start" yaml:"start"`
	End            geo.ScreenPoint `json:"end" yaml:"end"`
	Label          geo.Rect        `json:"label" yaml:"label"`
	DistanceMeters float64         `json:"distance_meters" yaml:"distance_meters"`
	ID             int             `json:"id" yaml:"id"`
}

// Frame is everything a renderer needs for one paint.
// It is derived from map-space state on every call; nothing here is stored.
type Frame struct {
	Measurement *MeasurementView        `json:"measurement,omitempty" yaml:"measurement,omitempty"`
	Map         string                  `json:"map" yaml:"map"`
	Error       string                  `json:"error,omitempty" yaml:"error,omitempty"`
	State       string                  `json:"state" yaml:"state"`
	Readout     string                  `json:"readout,omitempty" yaml:"readout,omitempty"`
	URL         string                  `json:"url" yaml:"url"`
	Markers     []MarkerView            `json:"markers,omitempty" yaml:"markers,omitempty"`
	Image       geo.Rect                `json:"image" yaml:"image"`
	Transform   transform.ViewTransform `json:"transform" yaml:"transform"`
	ZoomPercent int                     `json:"zoom_percent" yaml:"zoom_percent"`
	Invalid     bool                    `json:"invalid" yaml:"invalid"`
	Loaded      bool                    `json:"loaded" yaml:"loaded"`
	CanShare    bool                    `json:"can_share" yaml:"can_share"`
}

// Frame projects the current state to screen space.
func (v *Viewer) Frame() Frame {
	f := Frame{
		Map:   v.mapFile.File,
		State: interact.Idle.String(),
		URL:   v.url,
	}

	if v.mapErr != nil {
		f.Invalid = true
		f.Error = v.mapErr.Error()
		return f
	}
	if !v.selected {
		return f
	}

	t := v.view.Transform()
	f.Transform = t
	f.ZoomPercent = int(math.Round(t.Scale * 100))
	f.State = v.machine.State().String()
	f.Loaded = v.loaded
	_, f.CanShare = v.engine.Measurement()

	img := v.ImageRect()
	f.Image = img
	if img.Empty() {
		// not laid out yet; skip the overlay this frame
		return f
	}

	b := v.mapFile.Bounds

	if p, ok := v.machine.Readout(); ok {
		f.Readout = formatPoint(p)
	}

	var distanceBox geo.Rect
	if m, ok := v.engine.Measurement(); ok {
		start := geo.ToScreenPoint(m.Start, img, b)
		end := geo.ToScreenPoint(m.End, img, b)
		text := m.Label()
		distanceBox = label.DistanceBox(start, end, v.opts.LabelSize(text))

		f.Measurement = &MeasurementView{
			ID:             m.ID,
			Start:          start,
			End:            end,
			DistanceMeters: m.DistanceMeters,
			Text:           text,
			Label:          distanceBox,
		}
	}

	markers := v.engine.Markers()
	f.Markers = make([]MarkerView, 0, len(markers))
	for i, mk := range markers {
		screen := geo.ToScreenPoint(mk.Point, img, b)
		text := formatPoint(mk.Point)
		size := v.opts.LabelSize(text)

		// only the first marker can collide with the distance label
		avoid := geo.Rect{}
		if i == 0 {
			avoid = distanceBox
		}
		box, placement := label.Resolve(screen, size, avoid)

		f.Markers = append(f.Markers, MarkerView{
			ID:        mk.ID,
			Map:       mk.Point,
			Screen:    screen,
			Text:      text,
			Label:     box,
			Placement: placement.String(),
		})
	}

	return f
}

// formatPoint renders a map point rounded to whole units.
func formatPoint(p geo.Point) string {
	return strconv.FormatFloat(math.Round(p.X), 'f', 0, 64) + ", " +
		strconv.FormatFloat(math.Round(p.Y), 'f', 0, 64)
}
