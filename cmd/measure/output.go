package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatGeoJSON = "geojson"
)

func writeOutput(v interface{}, format, path string) error {
	var (
		data []byte
		err  error
	)

	if format == formatYAML {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal %s: %w", format, err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(path, data, 0644)
}
