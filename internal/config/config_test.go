package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "JWT_SECRET", "MVCMAP_CONFIG", "MVCMAP_CENTER",
		"MVCMAP_REGION_LEVEL", "MVCMAP_VIEWPORT", "MVCMAP_CACHE_BYTES",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mvcmap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != ":8080" {
		t.Errorf("Expected port :8080, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "" {
		t.Errorf("Expected auth disabled by default, got secret %q", cfg.JWTSecret)
	}
	if cfg.Viewport != (mvcmap.Size{Width: 1024, Height: 768}) {
		t.Errorf("Expected default viewport 1024x768, got %v", cfg.Viewport)
	}
	if cfg.Map.ZoomThreshold != 15 || cfg.Map.CountThreshold != 1000 {
		t.Errorf("Expected default selection thresholds, got %d/%d",
			cfg.Map.ZoomThreshold, cfg.Map.CountThreshold)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MVCMAP_CONFIG", writeFile(t, `
port: "9090"
default_center:
  lat: 37.77
  lng: -122.42
region_level: 2
viewport:
  width: 640
  height: 480
map:
  padding_factor: 0.5
  count_threshold: 200
  heatmap:
    gradient:
      - {offset: 0, color: blue}
      - {offset: 1, color: red}
  tiles:
    url: https://tiles.example.com/{z}/{x}/{y}.png
`))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != ":9090" {
		t.Errorf("Expected port :9090, got %s", cfg.Port)
	}
	if cfg.DefaultCenter != (mvcmap.LatLng{Lat: 37.77, Lng: -122.42}) {
		t.Errorf("Expected center 37.77,-122.42, got %v", cfg.DefaultCenter)
	}
	if cfg.RegionLevel != 2 {
		t.Errorf("Expected region level 2, got %d", cfg.RegionLevel)
	}
	if cfg.Viewport != (mvcmap.Size{Width: 640, Height: 480}) {
		t.Errorf("Expected viewport 640x480, got %v", cfg.Viewport)
	}
	if cfg.Map.PaddingFactor != 0.5 || cfg.Map.CountThreshold != 200 {
		t.Errorf("Expected padding 0.5 and count threshold 200, got %v/%d",
			cfg.Map.PaddingFactor, cfg.Map.CountThreshold)
	}
	if len(cfg.Map.Heatmap.Gradient) != 2 || cfg.Map.Heatmap.Gradient[1].Color != "red" {
		t.Errorf("Expected 2-stop gradient ending in red, got %+v", cfg.Map.Heatmap.Gradient)
	}
	if cfg.Map.TileLayer.URL != "https://tiles.example.com/{z}/{x}/{y}.png" {
		t.Errorf("Unexpected tile URL %s", cfg.Map.TileLayer.URL)
	}

	// Keys absent from the file keep their defaults
	if cfg.Map.MinRadius != 3 || cfg.Map.MaxRadius != 10 {
		t.Errorf("Expected default radii, got %v/%v", cfg.Map.MinRadius, cfg.Map.MaxRadius)
	}
	if cfg.Map.TileLayer.Attribution != mvcmap.DefaultOptions().TileLayer.Attribution {
		t.Errorf("Expected default attribution, got %q", cfg.Map.TileLayer.Attribution)
	}
	if cfg.Map.Heatmap.MaxValue != 2 {
		t.Errorf("Expected default heatmap max, got %v", cfg.Map.Heatmap.MaxValue)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MVCMAP_CONFIG", writeFile(t, `
port: ":9090"
region_level: 1
viewport: {width: 640, height: 480}
`))
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MVCMAP_CENTER", "51.5, -0.12")
	t.Setenv("MVCMAP_REGION_LEVEL", "3")
	t.Setenv("MVCMAP_VIEWPORT", "1920X1080")
	t.Setenv("MVCMAP_CACHE_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != ":7070" {
		t.Errorf("Expected env port :7070, got %s", cfg.Port)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("Expected JWT secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.DefaultCenter != (mvcmap.LatLng{Lat: 51.5, Lng: -0.12}) {
		t.Errorf("Expected center 51.5,-0.12, got %v", cfg.DefaultCenter)
	}
	if cfg.RegionLevel != 3 {
		t.Errorf("Expected region level 3, got %d", cfg.RegionLevel)
	}
	if cfg.Viewport != (mvcmap.Size{Width: 1920, Height: 1080}) {
		t.Errorf("Expected viewport 1920x1080, got %v", cfg.Viewport)
	}
	if cfg.CacheBytes != 1024 {
		t.Errorf("Expected cache size 1024, got %d", cfg.CacheBytes)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad center", env: map[string]string{"MVCMAP_CENTER": "north"}},
		{name: "center out of range", env: map[string]string{"MVCMAP_CENTER": "95,0"}},
		{name: "bad region level", env: map[string]string{"MVCMAP_REGION_LEVEL": "two"}},
		{name: "negative region level", env: map[string]string{"MVCMAP_REGION_LEVEL": "-1"}},
		{name: "bad viewport", env: map[string]string{"MVCMAP_VIEWPORT": "800"}},
		{name: "zero viewport", env: map[string]string{"MVCMAP_VIEWPORT": "0x600"}},
		{name: "bad cache size", env: map[string]string{"MVCMAP_CACHE_BYTES": "lots"}},
		{name: "missing file", env: map[string]string{"MVCMAP_CONFIG": "/nonexistent/mvcmap.yaml"}},
		{name: "malformed file", file: "map: [unclosed"},
		{name: "invalid map options", file: "map: {min_radius: 20}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.file != "" {
				t.Setenv("MVCMAP_CONFIG", writeFile(t, tt.file))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Error("Expected Load to fail")
			}
		})
	}
}

func TestParseLatLng(t *testing.T) {
	tests := []struct {
		input    string
		expected mvcmap.LatLng
		ok       bool
	}{
		{input: "1,2", expected: mvcmap.LatLng{Lat: 1, Lng: 2}, ok: true},
		{input: " -33.86 , 151.2 ", expected: mvcmap.LatLng{Lat: -33.86, Lng: 151.2}, ok: true},
		{input: "1;2", ok: false},
		{input: "1,east", ok: false},
		{input: "0,181", ok: false},
	}

	for _, tt := range tests {
		got, err := parseLatLng(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("parseLatLng(%q): expected ok=%v, got err %v", tt.input, tt.ok, err)
			continue
		}
		if tt.ok && got != tt.expected {
			t.Errorf("parseLatLng(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
