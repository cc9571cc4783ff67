// Package replay runs recorded interaction scripts against a viewer instance.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/interact"
	"github.com/woozymasta/mapview/internal/viewer"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Button actions understood by scripts.
const (
	ActionZoomIn  = "zoom_in"
	ActionZoomOut = "zoom_out"
	ActionReset   = "reset"
	ActionFit     = "fit"
	ActionClear   = "clear"
	ActionShare   = "share"
	ActionResize  = "resize"
	ActionSelect  = "select"
)

// ErrBadStep is returned for steps that do not name exactly one thing to do.
var ErrBadStep = errors.New("bad script step")

// Step is one scripted input. Exactly one of Event, Click or Action is set.
type Step struct {
	Event  *interact.Event `yaml:"event,omitempty"`
	Click  *geo.Point      `yaml:"click,omitempty"` // primary click at a map point, projected with the live layout
	Size   *geo.Size       `yaml:"size,omitempty"`  // resize target, or image size for select
	Action string          `yaml:"action,omitempty"`
	Map    string          `yaml:"map,omitempty"` // select target
}

// Script is a recorded viewer session.
type Script struct {
	URL           string   `yaml:"url"`
	Map           string   `yaml:"map"`
	Steps         []Step   `yaml:"steps"`
	Container     geo.Size `yaml:"container"`
	Image         geo.Size `yaml:"image"`
	MetersPerUnit float64  `yaml:"meters_per_unit,omitempty"`
}

// Report is the outcome of a replay.
type Report struct {
	Share *viewer.ShareResult `json:"share,omitempty" yaml:"share,omitempty"`
	Frame viewer.Frame        `json:"frame" yaml:"frame"`
	Steps int                 `json:"steps" yaml:"steps"`
}

// Load reads a YAML script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run mounts a fresh viewer, loads the map and applies every step in order.
// An invalid map is not an error: the report carries the invalid frame.
func (s *Script) Run(ctx context.Context, clip viewer.Clipboard) (Report, error) {
	v := viewer.New(viewer.Options{
		URL:           s.URL,
		MetersPerUnit: s.MetersPerUnit,
		Clipboard:     clip,
	})
	v.Resize(s.Container)

	if err := s.load(v, s.Map, s.Image); err != nil {
		return Report{Frame: v.Frame()}, nil
	}

	var rep Report
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := s.apply(ctx, v, step, &rep); err != nil {
			return rep, fmt.Errorf("step %d: %w", i+1, err)
		}
		rep.Steps++

		log.Trace().
			Int("step", i+1).
			Str("state", v.State().String()).
			Float64("scale", v.Transform().Scale).
			Msg("Step applied")
	}

	rep.Frame = v.Frame()
	return rep, nil
}

func (s *Script) load(v *viewer.Viewer, mapID string, size geo.Size) error {
	if err := v.SelectMap(mapID, s.MetersPerUnit); err != nil {
		return err
	}
	return v.ImageLoaded(size)
}

func (s *Script) apply(ctx context.Context, v *viewer.Viewer, step Step, rep *Report) error {
	set := 0
	if step.Event != nil {
		set++
	}
	if step.Click != nil {
		set++
	}
	if step.Action != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: need exactly one of event, click, action", ErrBadStep)
	}

	switch {
	case step.Event != nil:
		v.Handle(*step.Event)

	case step.Click != nil:
		sp := geo.ToScreenPoint(*step.Click, v.ImageRect(), v.Bounds())
		v.Handle(interact.Event{Kind: interact.Press, X: sp.X, Y: sp.Y, Button: interact.ButtonPrimary})
		v.Handle(interact.Event{Kind: interact.Release, X: sp.X, Y: sp.Y, Button: interact.ButtonPrimary})

	default:
		return s.action(ctx, v, step, rep)
	}

	return nil
}

func (s *Script) action(ctx context.Context, v *viewer.Viewer, step Step, rep *Report) error {
	switch step.Action {
	case ActionZoomIn:
		v.ZoomIn()
	case ActionZoomOut:
		v.ZoomOut()
	case ActionReset:
		v.ResetView()
	case ActionFit:
		v.FitToScreen()
	case ActionClear:
		v.Clear()
	case ActionResize:
		if step.Size == nil {
			return fmt.Errorf("%w: resize needs size", ErrBadStep)
		}
		v.Resize(*step.Size)
	case ActionSelect:
		size := s.Image
		if step.Size != nil {
			size = *step.Size
		}
		if err := s.load(v, step.Map, size); err != nil {
			log.Warn().Err(err).Str("map", step.Map).Msg("Selected map is unusable")
		}
	case ActionShare:
		res, err := v.Share(ctx)
		if errors.Is(err, viewer.ErrNothingToShare) {
			log.Warn().Msg("Share skipped: nothing measured")
			return nil
		}
		if err != nil {
			return err
		}
		rep.Share = &res
	default:
		return fmt.Errorf("%w: unknown action %q", ErrBadStep, step.Action)
	}

	return nil
}
