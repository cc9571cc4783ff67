package main

import (
	"errors"
	"fmt"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/measure"
	"github.com/woozymasta/mapview/internal/share"

	"github.com/rs/zerolog/log"
)

var errNoMeasurement = errors.New("link carries no valid measurement for this map")

type decodeCommand struct {
	Output        string  `short:"o" long:"out"             description:"Output file path. Writes to stdout if empty"`
	Format        string  `short:"f" long:"format"          description:"Output format" choice:"json" choice:"yaml" choice:"geojson" default:"json"`
	MetersPerUnit float64 `short:"m" long:"meters-per-unit" description:"Meters per map unit" default:"1"`
	LonLat        bool    `short:"L" long:"lonlat"          description:"Project GeoJSON positions to WGS84 over the map bounds"`

	Args struct {
		Map string `positional-arg-name:"map-file" description:"Map file name carrying bounds, e.g. chernarus-0-0-15360-15360.webp"`
		URL string `positional-arg-name:"url" description:"Shared viewer link"`
	} `positional-args:"yes" required:"yes"`
}

type decodedLink struct {
	Map         string              `json:"map" yaml:"map"`
	Label       string              `json:"label" yaml:"label"`
	Query       share.State         `json:"query" yaml:"query"`
	Measurement measure.Measurement `json:"measurement" yaml:"measurement"`
}

func (c *decodeCommand) Execute([]string) error {
	mf, err := geo.ParseMapFile(c.Args.Map)
	if err != nil {
		return err
	}

	st, ok := share.DecodeURL(c.Args.URL, mf.Bounds)
	if !ok {
		return fmt.Errorf("%w: %s", errNoMeasurement, c.Args.URL)
	}

	m := measure.NewEngine(c.MetersPerUnit).Restore(st.From, st.To)

	log.Debug().
		Str("map", mf.Name).
		Str("distance", m.Label()).
		Msg("Shared link decoded")

	if c.Format == formatGeoJSON {
		return writeOutput(measure.FeatureCollection(m, mf.Bounds, c.LonLat), formatJSON, c.Output)
	}

	return writeOutput(decodedLink{
		Map:         mf.File,
		Label:       m.Label(),
		Query:       st,
		Measurement: m,
	}, c.Format, c.Output)
}
