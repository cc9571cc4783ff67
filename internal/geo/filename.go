package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidMapFormat is returned for map files whose names do not embed bounds.
var ErrInvalidMapFormat = errors.New("invalid map format")

// MapFile is a map image whose bounds are encoded in its file name.
type MapFile struct {
	File   string    `json:"file"`
	Name   string    `json:"name"`
	Ext    string    `json:"ext"`
	Bounds MapBounds `json:"bounds"`
}

// Pattern captures: 1=Name, 2=MinX, 3=MinY, 4=MaxX, 5=MaxY, 6=Extension
var mapFileRegex = regexp.MustCompile(
	`^(.+?)` + // Group 1: Name (non-greedy, may contain dashes)
		`-(\d+(?:\.\d+)?)` + // Group 2: MinX
		`-(\d+(?:\.\d+)?)` + // Group 3: MinY
		`-(\d+(?:\.\d+)?)` + // Group 4: MaxX
		`-(\d+(?:\.\d+)?)` + // Group 5: MaxY
		`\.([A-Za-z0-9]+)$`, // Group 6: Extension
)

// ParseMapFile resolves bounds from a file name like "chernarus-0-0-15360-15360.webp".
func ParseMapFile(file string) (MapFile, error) {
	m := mapFileRegex.FindStringSubmatch(file)
	if m == nil {
		return MapFile{}, fmt.Errorf("%w: %q", ErrInvalidMapFormat, file)
	}

	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+2], 64)
		if err != nil {
			return MapFile{}, fmt.Errorf("%w: %q: %v", ErrInvalidMapFormat, file, err)
		}
		v[i] = f
	}

	b, err := NewBounds(v[0], v[1], v[2], v[3])
	if err != nil {
		return MapFile{}, fmt.Errorf("%w: %q: %v", ErrInvalidMapFormat, file, err)
	}

	return MapFile{File: file, Name: m[1], Ext: m[6], Bounds: b}, nil
}
