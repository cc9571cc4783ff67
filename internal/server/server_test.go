package server

import (
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/mapview/internal/config"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) (*ServerContext, http.Handler) {
	t.Helper()

	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "test-0-0-100-100.png"), 200, 100)
	writeImage(t, filepath.Join(dir, "broken.png"), 10, 10)

	one := 1
	cfg, err := config.Parse([]byte(`
meters_per_unit: 5
maps:
  - file: broken.png
    title: Broken
  - file: test-0-0-100-100.png
    aliases: [t]
  - file: missing-0-0-10-10.png
`))
	if err != nil {
		t.Fatal(err)
	}
	cfg.MapsDir = dir
	cfg.Maps[1].Index = &one

	s := NewServerContext(cfg)
	return s, RequestLogger(s.Routes())
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServerContext(t *testing.T) {
	s, _ := newTestServer(t)

	if len(s.Config.Maps) != 2 {
		t.Fatalf("expected missing image to be dropped, got %d maps", len(s.Config.Maps))
	}

	first := s.Config.Maps[0]
	if first.File != "test-0-0-100-100.png" || first.Title != "test" {
		t.Errorf("indexed map should sort first: %+v", first)
	}
	if first.Bounds == nil || first.Bounds.MaxX != 100 || first.Width != 200 || first.Height != 100 {
		t.Errorf("map not resolved: %+v", first)
	}

	broken := s.Config.Maps[1]
	if !broken.Invalid || broken.Bounds != nil {
		t.Errorf("broken map should be flagged invalid: %+v", broken)
	}

	for _, id := range []string{"test-0-0-100-100.png", "test", "t"} {
		if m, ok := s.lookup(id); !ok || m.File != first.File {
			t.Errorf("lookup(%q) = %+v, %v", id, m, ok)
		}
	}
}

func TestHandleMapsList(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/api/maps", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	type bounds struct {
		MaxY float64 `json:"max_y"`
	}
	var maps []struct {
		Bounds        *bounds `json:"bounds"`
		File          string  `json:"file"`
		Invalid       bool    `json:"invalid"`
		MetersPerUnit float64 `json:"meters_per_unit"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&maps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(maps) != 2 || maps[0].Bounds == nil || maps[0].Bounds.MaxY != 100 || maps[0].MetersPerUnit != 5 {
		t.Errorf("unexpected catalog %+v", maps)
	}
	if !maps[1].Invalid || maps[1].Bounds != nil {
		t.Errorf("broken map = %+v", maps[1])
	}
}

func TestHandleMeasure(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/api/measure?map=t&from=10-10&to=10-60", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp MeasureResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Measurement == nil || resp.Measurement.DistanceMeters != 250 || resp.Label != "250m" {
		t.Errorf("measurement = %+v label %q", resp.Measurement, resp.Label)
	}
	if resp.Query != "from=10-10&to=10-60" {
		t.Errorf("query = %q", resp.Query)
	}
	if resp.GeoJSON == nil || len(resp.GeoJSON.Features) != 3 {
		t.Errorf("geojson = %+v", resp.GeoJSON)
	}
}

func TestHandleMeasureRejects(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"out of bounds", "/api/measure?map=t&from=9999-9999&to=10-10", http.StatusOK},
		{"garbage", "/api/measure?map=t&from=x-1&to=10-10", http.StatusOK},
		{"unknown map", "/api/measure?map=nope&from=1-1&to=2-2", http.StatusNotFound},
		{"invalid map", "/api/measure?map=broken.png&from=1-1&to=2-2", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}

			var resp MeasureResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Measurement != nil || resp.GeoJSON != nil {
				t.Errorf("invalid link must yield no measurement: %+v", resp)
			}
		})
	}
}

func TestHandleMapImage(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/maps/test-0-0-100-100.png", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	rec = get(t, h, "/maps/test-0-0-100-100.png", http.Header{"If-None-Match": {etag}})
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", rec.Code)
	}

	for _, target := range []string{"/maps/t", "/maps/missing-0-0-10-10.png", "/maps/"} {
		if rec := get(t, h, target, nil); rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", target, rec.Code)
		}
	}
}

func TestHandleIndex(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/", nil)
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("index status = %d, %d bytes", rec.Code, rec.Body.Len())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}

	if rec := get(t, h, "/favicon.ico", nil); rec.Code != http.StatusNotFound {
		t.Errorf("asset-looking path status = %d, want 404", rec.Code)
	}
}
