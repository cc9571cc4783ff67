package server

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/woozymasta/mapview/assets"
	"github.com/woozymasta/mapview/internal/config"
	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/metrics"
	"github.com/woozymasta/mapview/internal/processor"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config          *config.Config
	MapNameResolver map[string]int // file, name or alias -> index in Config.Maps
	IndexHTML       []byte
}

// NewServerContext initializes the context and processes the map configuration.
// Maps without an image on disk are dropped; maps whose file name carries no
// bounds stay listed and are flagged invalid so the client can say so.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_maps_count", len(cfg.Maps)).Msg("Initializing server context")

	validMaps := make([]config.Map, 0, len(cfg.Maps))
	invalid := 0

	for i := range cfg.Maps {
		world := cfg.Maps[i]
		path := filepath.Join(cfg.MapsDir, world.File)

		if _, err := os.Stat(path); err != nil {
			log.Warn().
				Str("map", world.File).
				Str("path", path).
				Msg("Skipping map: image not found")
			continue
		}

		mf, err := geo.ParseMapFile(world.File)
		if err != nil {
			world.Invalid = true
			invalid++
			log.Warn().Err(err).Str("map", world.File).Msg("Map listed without bounds")
		} else {
			b := mf.Bounds
			world.Bounds = &b
			if world.Title == "" {
				world.Title = mf.Name
			}
		}
		if world.Title == "" {
			world.Title = world.File
		}

		if w, h, err := processor.ImageSize(path); err != nil {
			log.Warn().Err(err).Str("map", world.File).Msg("Cannot read image size")
		} else {
			world.Width, world.Height = w, h
		}

		log.Debug().
			Str("map", world.File).
			Bool("invalid", world.Invalid).
			Int("width", world.Width).
			Int("height", world.Height).
			Msg("Map validated and added to context")

		validMaps = append(validMaps, world)
	}

	cfg.Maps = validMaps

	sort.SliceStable(cfg.Maps, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Maps[i].Index != nil {
			idxI = *cfg.Maps[i].Index
		}
		if cfg.Maps[j].Index != nil {
			idxJ = *cfg.Maps[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Maps[i].Title < cfg.Maps[j].Title
	})

	// Setup Resolver after sorting so indexes are stable
	resolver := make(map[string]int)
	for i, world := range cfg.Maps {
		resolver[world.File] = i
		if mf, err := geo.ParseMapFile(world.File); err == nil {
			if _, taken := resolver[mf.Name]; !taken {
				resolver[mf.Name] = i
			}
		}
		for _, alias := range world.Aliases {
			resolver[alias] = i
		}
	}

	metrics.MapsAvailable.Set(float64(len(cfg.Maps)))
	metrics.MapsInvalid.Set(float64(invalid))

	log.Info().
		Int("valid_maps_count", len(cfg.Maps)).
		Int("invalid_maps_count", invalid).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:          cfg,
		IndexHTML:       assets.Index,
		MapNameResolver: resolver,
	}
}

// lookup resolves a map by file, name or alias.
func (s *ServerContext) lookup(id string) (config.Map, bool) {
	i, ok := s.MapNameResolver[id]
	if !ok {
		return config.Map{}, false
	}
	return s.Config.Maps[i], true
}
