package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/mapview/internal/config"
	"github.com/woozymasta/mapview/internal/logger"
	"github.com/woozymasta/mapview/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile    string  `short:"c" long:"config"          env:"CONFIG_FILE"     description:"Path to configuration file"          default:"config.yaml"`
	MapsDir       string  `short:"d" long:"maps-dir"        env:"MAPS_DIR"        description:"Directory with display images (overrides config)"`
	Addr          string  `short:"a" long:"addr"            env:"LISTEN_ADDRESS"  description:"Address to listen on"                default:"0.0.0.0"`
	Port          int     `short:"p" long:"port"            env:"LISTEN_PORT"     description:"Port to listen on"                   default:"8080"`
	MetersPerUnit float64 `short:"m" long:"meters-per-unit" env:"METERS_PER_UNIT" description:"Default meters per map unit (overrides config)"`
}

func main() {
	// .env is optional; real environment wins
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.ConfigFile).Msg("Failed to load configuration")
	}

	if opts.MapsDir != "" {
		cfg.MapsDir = opts.MapsDir
	}
	if opts.MetersPerUnit > 0 {
		cfg.SetMetersPerUnit(opts.MetersPerUnit)
	}

	srvCtx := server.NewServerContext(cfg)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           server.RequestLogger(srvCtx.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Str("maps_dir", cfg.MapsDir).
		Int("maps_loaded", len(srvCtx.Config.Maps)).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
