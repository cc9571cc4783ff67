// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/woozymasta/mapview/internal/geo"
	"github.com/woozymasta/mapview/internal/measure"
	"github.com/woozymasta/mapview/internal/metrics"
	"github.com/woozymasta/mapview/internal/share"
)

const etagCap = 64

// MeasureResponse is the body of the measure API.
// Measurement and GeoJSON are null when the link carries no valid measurement.
type MeasureResponse struct {
	Measurement *measure.Measurement          `json:"measurement"`
	GeoJSON     *geo.GeoJSONFeatureCollection `json:"geojson"`
	Map         string                        `json:"map"`
	Label       string                        `json:"label,omitempty"`
	Query       string                        `json:"query,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Routes registers all handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/maps", s.HandleMapsList)
	mux.HandleFunc("/api/measure", s.HandleMeasure)
	mux.HandleFunc("/maps/", s.HandleMapImage)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", s.HandleIndex)
	return mux
}

// HandleMapsList serves the JSON catalog of available maps.
func (s *ServerContext) HandleMapsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Config.Maps)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleMapImage serves the display image of a configured map.
func (s *ServerContext) HandleMapImage(w http.ResponseWriter, r *http.Request) {
	// Path: /maps/{file}
	file := strings.TrimPrefix(r.URL.Path, "/maps/")
	if file == "" || strings.ContainsAny(file, `/\`) || strings.Contains(file, "..") {
		http.NotFound(w, r)
		return
	}

	// allow only configured files to prevent path probing
	world, ok := s.lookup(file)
	if !ok || world.File != file {
		http.NotFound(w, r)
		return
	}

	if !s.serveFile(w, r, filepath.Join(s.Config.MapsDir, world.File), "") {
		http.NotFound(w, r)
	}
}

// HandleMeasure decodes a share link against a map and returns the measurement it describes.
// Query: map=<file|name|alias>&from=<x>-<y>&to=<x>-<y>[&lonlat=1]
func (s *ServerContext) HandleMeasure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("map")

	world, ok := s.lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown map"})
		return
	}
	if world.Invalid || world.Bounds == nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: geo.ErrInvalidMapFormat.Error()})
		return
	}

	resp := MeasureResponse{Map: world.File}

	st, ok := share.Decode(q, *world.Bounds)
	if !ok {
		metrics.SharedLinks.WithLabelValues(world.File, "ignored").Inc()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	lonLat, _ := strconv.ParseBool(q.Get("lonlat"))
	m := measure.NewEngine(world.MetersPerUnit).Restore(st.From, st.To)
	fc := measure.FeatureCollection(m, *world.Bounds, lonLat)

	resp.Measurement = &m
	resp.Label = m.Label()
	resp.Query = share.Encode(m.Start, m.End, *world.Bounds).Encode()
	resp.GeoJSON = &fc

	metrics.SharedLinks.WithLabelValues(world.File, "restored").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
