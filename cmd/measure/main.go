package main

import (
	"os"

	"github.com/woozymasta/mapview/internal/logger"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()
		return cmd.Execute(args)
	}

	mustAdd(parser, "decode", "Decode a shared link",
		"Reads the from/to query of a shared viewer link against a map file name and prints the measurement.",
		&decodeCommand{})
	mustAdd(parser, "replay", "Replay an interaction script",
		"Runs a YAML interaction script against a headless viewer and prints the final frame.",
		&replayCommand{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func mustAdd(p *flags.Parser, name, short, long string, data interface{}) {
	if _, err := p.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}
