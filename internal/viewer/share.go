package viewer

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ShareResult describes the outcome of the share action.
type ShareResult struct {
	// ManualURL is set when the clipboard was unavailable and the user has to copy by hand.
	ManualURL string `json:"manual_url,omitempty" yaml:"manual_url,omitempty"`
	URL       string `json:"url" yaml:"url"`
	Copied    bool   `json:"copied" yaml:"copied"`
}

// CanShare reports whether the share action is enabled.
func (v *Viewer) CanShare() bool {
	_, ok := v.engine.Measurement()
	return v.Ready() && ok
}

// Share copies the page URL with the measurement query to the clipboard.
// Clipboard failures never surface as errors; the result carries a manual-copy fallback instead.
func (v *Viewer) Share(ctx context.Context) (ShareResult, error) {
	if !v.CanShare() {
		return ShareResult{}, ErrNothingToShare
	}

	res := ShareResult{URL: v.url}
	if v.opts.Clipboard == nil {
		res.ManualURL = v.url
		return res, nil
	}

	if err := v.opts.Clipboard.WriteText(ctx, v.url); err != nil {
		log.Warn().Err(err).Msg("Clipboard unavailable, falling back to manual copy")
		res.ManualURL = v.url
		return res, nil
	}

	res.Copied = true
	return res, nil
}
