package main

import (
	"crypto/tls"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/woozymasta/mapview/internal/config"
	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/logger"
	"github.com/woozymasta/mapview/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	MapsDir     string   `short:"d" long:"maps-dir"    env:"MAPS_DIR"     description:"Output directory for display images (overrides config)"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES"  description:"Limit processing to specific map files or names"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY"  description:"Concurrency" default:"4"`
	Force       bool     `short:"f" long:"force"       description:"Force overwrite of existing files"`
}

func main() {
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.MapsDir != "" {
		cfg.MapsDir = opts.MapsDir
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: 5 * time.Minute,
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	// Filter maps if limit is set
	mapsToProcess := cfg.Maps
	if len(opts.Limit) > 0 {
		mapsToProcess = make([]config.Map, 0)
		availableMaps := make(map[string]config.Map)
		for _, m := range cfg.Maps {
			availableMaps[m.File] = m
			if mf, err := geo.ParseMapFile(m.File); err == nil {
				availableMaps[mf.Name] = m
			}
		}

		seen := make(map[string]bool)

		for _, limitName := range opts.Limit {
			m, ok := availableMaps[limitName]
			if !ok {
				log.Error().
					Str("name", limitName).
					Msg("Map specified in --limit not found in configuration")
				continue
			}
			if seen[m.File] {
				continue
			}
			seen[m.File] = true
			mapsToProcess = append(mapsToProcess, m)
		}
	}

	jobs := make([]processor.Job, 0, len(mapsToProcess))
	for _, world := range mapsToProcess {
		if world.Source == "" {
			log.Debug().Str("map", world.File).Msg("No source configured, skipping")
			continue
		}
		if _, err := geo.ParseMapFile(world.File); err != nil {
			log.Warn().Err(err).Str("map", world.File).Msg("Output name carries no bounds, the viewer will reject it")
		}

		jobs = append(jobs, processor.Job{
			Map:     world.File,
			Source:  world.Source,
			Dest:    filepath.Join(cfg.MapsDir, world.File),
			MaxSide: world.MaxSide,
			Quality: cfg.Quality,
		})
	}

	log.Info().
		Int("maps_total", len(cfg.Maps)).
		Int("maps_queued", len(jobs)).
		Int("concurrency", opts.Concurrency).
		Msg("Starting loader")

	failed := 0
	for _, res := range processor.PrepareAll(client, jobs, opts.Concurrency, opts.Force) {
		if res.Err != nil {
			failed++
			log.Error().Err(res.Err).Str("map", res.Job.Map).Msg("Failed to prepare map image")
			continue
		}

		log.Info().
			Str("map", res.Job.Map).
			Int("width", res.Width).
			Int("height", res.Height).
			Bool("skipped", res.Skipped).
			Msg("Map image ready")
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("Loader finished with errors")
	}

	log.Info().Msg("Loader finished successfully")
}
