// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/measure"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Load.
const (
	DefaultMapsDir = "maps"
	DefaultMaxSide = 8192
	DefaultQuality = 85
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution   string  `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	MapsDir       string  `yaml:"maps_dir,omitempty" json:"-"`
	Maps          []Map   `yaml:"maps" json:"maps"`
	MetersPerUnit float64 `yaml:"meters_per_unit,omitempty" json:"meters_per_unit,omitempty"`
	MaxSide       int     `yaml:"max_side,omitempty" json:"-"`
	Quality       int     `yaml:"quality,omitempty" json:"-"`
}

// Map represents a single map image configuration.
// The bounds live in the file name: name-minX-minY-maxX-maxY.ext
type Map struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	// resolved at startup, never read from YAML
	Bounds *geo.MapBounds `yaml:"-" json:"bounds"`

	File          string   `yaml:"file" json:"file"`
	Title         string   `yaml:"title,omitempty" json:"title"`
	Source        string   `yaml:"source,omitempty" json:"-"` // original image for the loader, path or URL
	Attribution   string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Aliases       []string `yaml:"aliases,omitempty" json:"-"`
	MetersPerUnit float64  `yaml:"meters_per_unit,omitempty" json:"meters_per_unit"`
	MaxSide       int      `yaml:"max_side,omitempty" json:"-"`
	Width         int      `yaml:"-" json:"width,omitempty"`
	Height        int      `yaml:"-" json:"height,omitempty"`
	Invalid       bool     `yaml:"-" json:"invalid,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MapsDir == "" {
		c.MapsDir = DefaultMapsDir
	}
	if c.MetersPerUnit <= 0 {
		c.MetersPerUnit = measure.DefaultMetersPerUnit
	}
	if c.MaxSide <= 0 {
		c.MaxSide = DefaultMaxSide
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = DefaultQuality
	}

	for i := range c.Maps {
		m := &c.Maps[i]
		if m.MetersPerUnit <= 0 {
			m.MetersPerUnit = c.MetersPerUnit
		}
		if m.MaxSide <= 0 {
			m.MaxSide = c.MaxSide
		}
		if m.Attribution == "" {
			m.Attribution = c.Attribution
		}
	}
}

// SetMetersPerUnit replaces the global scale. Maps that inherited the previous
// global value follow the new one; maps with their own scale keep it.
func (c *Config) SetMetersPerUnit(v float64) {
	if v <= 0 {
		return
	}

	prev := c.MetersPerUnit
	c.MetersPerUnit = v
	for i := range c.Maps {
		if c.Maps[i].MetersPerUnit == prev {
			c.Maps[i].MetersPerUnit = v
		}
	}
}
