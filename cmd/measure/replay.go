package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/woozymasta/mapview/internal/replay"
	"github.com/woozymasta/mapview/internal/viewer"

	"github.com/rs/zerolog/log"
)

type replayCommand struct {
	Output    string `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format    string `short:"f" long:"format"    description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Clipboard string `short:"C" long:"clipboard" description:"File that receives shared links instead of the system clipboard"`

	Args struct {
		Script string `positional-arg-name:"script" description:"YAML interaction script"`
	} `positional-args:"yes" required:"yes"`
}

func (c *replayCommand) Execute([]string) error {
	script, err := replay.Load(c.Args.Script)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var clip viewer.Clipboard
	if c.Clipboard != "" {
		clip = replay.FileClipboard{Path: c.Clipboard}
	}

	rep, err := script.Run(ctx, clip)
	if err != nil {
		return err
	}

	log.Info().
		Str("map", rep.Frame.Map).
		Int("steps", rep.Steps).
		Bool("invalid", rep.Frame.Invalid).
		Msg("Replay finished")

	return writeOutput(rep, c.Format, c.Output)
}
