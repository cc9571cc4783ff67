// Package viewer composes the transform controller, the measurement engine,
// the interaction machine and the share codec into one map viewer instance.
//
// A Viewer is driven from a single event loop. Every method completes synchronously.
package viewer

import (
	"context"
	"errors"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/interact"
	"github.com/woozymasta/mapview/internal/measure"
	"github.com/woozymasta/mapview/internal/share"
	"github.com/woozymasta/mapview/internal/transform"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoMap is returned by operations that need a selected map.
	ErrNoMap = errors.New("no map selected")
	// ErrNothingToShare is returned by Share without a completed measurement.
	ErrNothingToShare = errors.New("no completed measurement to share")
)

// Clipboard receives shared links.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Options configure a Viewer.
type Options struct {
	// Clipboard is optional; without it Share always falls back to manual copy.
	Clipboard Clipboard
	// LabelSize measures label text; DefaultLabelSize is used when nil.
	LabelSize func(text string) geo.Size
	// URL is the page URL at mount, possibly carrying from/to.
	URL string
	// MetersPerUnit applies to maps selected without their own scale.
	MetersPerUnit float64
}

// Viewer is one interactive map viewer.
type Viewer struct {
	opts    Options
	view    *transform.Controller
	engine  *measure.Engine
	machine *interact.Machine

	mapFile geo.MapFile
	mapErr  error
	url     string

	container geo.Size
	natural   geo.Size

	selected bool
	loaded   bool
	restored bool
}

// New creates a viewer with no map selected.
func New(opts Options) *Viewer {
	if opts.LabelSize == nil {
		opts.LabelSize = DefaultLabelSize
	}

	v := &Viewer{
		opts: opts,
		view: transform.NewController(),
		url:  opts.URL,
	}
	v.reset(opts.MetersPerUnit)

	return v
}

// ImageRect implements interact.Surface.
func (v *Viewer) ImageRect() geo.Rect {
	if !v.loaded {
		return geo.Rect{}
	}
	return v.view.Transform().ImageRect(v.container, v.natural)
}

// Bounds implements interact.Surface.
func (v *Viewer) Bounds() geo.MapBounds {
	return v.mapFile.Bounds
}

// Map returns the selected map file.
func (v *Viewer) Map() geo.MapFile {
	return v.mapFile
}

// URL returns the page URL including the share query.
func (v *Viewer) URL() string {
	return v.url
}

// Ready reports whether a valid map is selected.
func (v *Viewer) Ready() bool {
	return v.selected && v.mapErr == nil
}

// SelectMap activates a map by its file name. Any measurement state, including
// a pending first endpoint, is dropped and the view is reset until the image loads.
// A malformed name puts the viewer into the invalid-map state and returns geo.ErrInvalidMapFormat.
func (v *Viewer) SelectMap(id string, metersPerUnit float64) error {
	switching := v.selected

	v.reset(metersPerUnit)
	v.view.Reset()
	v.selected = true
	v.loaded = false
	v.restored = false
	v.natural = geo.Size{}

	if switching {
		v.clearURL()
	}

	mf, err := geo.ParseMapFile(id)
	if err != nil {
		v.mapFile = geo.MapFile{File: id}
		v.mapErr = err
		log.Warn().Err(err).Str("map", id).Msg("Map has no usable bounds")
		return err
	}

	v.mapFile = mf
	v.mapErr = nil

	log.Debug().
		Str("map", mf.Name).
		Float64("min_x", mf.Bounds.MinX).
		Float64("min_y", mf.Bounds.MinY).
		Float64("max_x", mf.Bounds.MaxX).
		Float64("max_y", mf.Bounds.MaxY).
		Msg("Map selected")

	return nil
}

// Resize records the viewport size. The first usable size after the image
// has loaded triggers a fit.
func (v *Viewer) Resize(container geo.Size) {
	wasEmpty := v.container.Empty()
	v.container = container

	if v.Ready() && v.loaded && wasEmpty {
		v.view.FitToScreen(v.container, v.natural)
	}
}

// ImageLoaded records the natural image size, fits it to the viewport and
// restores a shared measurement from the URL once per map selection.
func (v *Viewer) ImageLoaded(natural geo.Size) error {
	if !v.Ready() {
		return v.notReady()
	}

	v.natural = natural
	v.loaded = !natural.Empty()
	v.view.FitToScreen(v.container, v.natural)

	if !v.restored {
		v.restored = true
		v.restoreFromURL()
	}

	return nil
}

// Handle forwards one input event to the interaction machine.
func (v *Viewer) Handle(ev interact.Event) interact.Result {
	if !v.Ready() {
		return interact.Result{}
	}
	return v.machine.Handle(ev)
}

// State returns the interaction state.
func (v *Viewer) State() interact.State {
	return v.machine.State()
}

// ZoomIn is the zoom-in button.
func (v *Viewer) ZoomIn() {
	if v.Ready() {
		v.view.ZoomIn()
	}
}

// ZoomOut is the zoom-out button.
func (v *Viewer) ZoomOut() {
	if v.Ready() {
		v.view.ZoomOut()
	}
}

// ResetView is the reset button.
func (v *Viewer) ResetView() {
	if v.Ready() {
		v.view.Reset()
	}
}

// FitToScreen is the fit button.
func (v *Viewer) FitToScreen() {
	if v.Ready() {
		v.view.FitToScreen(v.container, v.natural)
	}
}

// Clear is the clear button: drops every marker and measurement and the share query.
func (v *Viewer) Clear() {
	if v.Ready() {
		v.machine.Clear()
	}
}

// Measurement returns the completed measurement, if any.
func (v *Viewer) Measurement() (measure.Measurement, bool) {
	return v.engine.Measurement()
}

// Markers returns the current markers.
func (v *Viewer) Markers() []measure.Marker {
	return v.engine.Markers()
}

// Pending returns the pending first endpoint, if any.
func (v *Viewer) Pending() (measure.Pending, bool) {
	return v.engine.Pending()
}

// Transform returns the current view transform.
func (v *Viewer) Transform() transform.ViewTransform {
	return v.view.Transform()
}

// reset replaces measurement state with an empty engine for the given scale.
func (v *Viewer) reset(metersPerUnit float64) {
	if metersPerUnit <= 0 {
		metersPerUnit = v.opts.MetersPerUnit
	}

	if v.machine != nil {
		v.machine.Cancel()
	}

	v.engine = measure.NewEngine(metersPerUnit)
	v.machine = interact.New(v.view, v.engine, v, interact.Hooks{
		OnMeasured: v.publish,
		OnCleared:  v.clearURL,
	})
}

func (v *Viewer) restoreFromURL() {
	if v.url == "" {
		return
	}

	st, ok := share.DecodeURL(v.url, v.mapFile.Bounds)
	if !ok {
		log.Debug().Str("map", v.mapFile.Name).Msg("No valid shared measurement in URL")
		return
	}

	m := v.engine.Restore(st.From, st.To)
	log.Debug().
		Str("map", v.mapFile.Name).
		Str("distance", m.Label()).
		Msg("Measurement restored from URL")
}

func (v *Viewer) publish(m measure.Measurement) {
	if v.url == "" {
		return
	}

	next, err := share.WithState(v.url, share.State{From: m.Start, To: m.End}, v.mapFile.Bounds)
	if err != nil {
		log.Warn().Err(err).Str("url", v.url).Msg("Cannot write measurement into URL")
		return
	}
	v.url = next
}

func (v *Viewer) clearURL() {
	if v.url == "" {
		return
	}

	next, err := share.Cleared(v.url)
	if err != nil {
		log.Warn().Err(err).Str("url", v.url).Msg("Cannot clear URL query")
		return
	}
	v.url = next
}

func (v *Viewer) notReady() error {
	if v.mapErr != nil {
		return v.mapErr
	}
	return ErrNoMap
}
