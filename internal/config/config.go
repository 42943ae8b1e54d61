// Package config loads the settings of the mvcmap server.
//
// Settings come from three sources, later ones overriding earlier ones:
// built-in defaults, an optional YAML file named by MVCMAP_CONFIG, and
// environment variables. A .env file in the working directory is loaded into
// the environment first, without replacing variables that are already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
)

// Config holds the server settings.
type Config struct {
	Port      string
	JWTSecret string // Empty disables authentication

	DefaultCenter mvcmap.LatLng
	RegionLevel   int
	Viewport      mvcmap.Size

	// CacheBytes bounds the layer payload cache. Zero means unlimited.
	CacheBytes int64

	Map mvcmap.Options
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:          ":8080",
		DefaultCenter: mvcmap.LatLng{Lat: 0, Lng: 0},
		RegionLevel:   1,
		Viewport:      mvcmap.Size{Width: 1024, Height: 768},
		CacheBytes:    64 * 1024 * 1024,
		Map:           mvcmap.DefaultOptions(),
	}
}

// Load reads .env, the YAML file named by MVCMAP_CONFIG and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("MVCMAP_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if c.RegionLevel < 0 {
		return fmt.Errorf("region level must not be negative, got %d", c.RegionLevel)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.CacheBytes < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheBytes)
	}
	if err := c.Map.Validate(); err != nil {
		return fmt.Errorf("map options: %w", err)
	}
	return nil
}

// fileConfig is the YAML layout. Missing keys keep their defaults.
type fileConfig struct {
	Port          string        `yaml:"port"`
	DefaultCenter mvcmap.LatLng `yaml:"default_center"`
	RegionLevel   int           `yaml:"region_level"`
	Viewport      mvcmap.Size   `yaml:"viewport"`
	CacheBytes    int64         `yaml:"cache_bytes"`
	Map           mapConfig     `yaml:"map"`
}

type mapConfig struct {
	MinRadius           float64       `yaml:"min_radius"`
	MaxRadius           float64       `yaml:"max_radius"`
	RadiusStep          float64       `yaml:"radius_step"`
	PaddingFactor       float64       `yaml:"padding_factor"`
	ZoomThreshold       int           `yaml:"zoom_threshold"`
	CountThreshold      int           `yaml:"count_threshold"`
	FallbackColor       string        `yaml:"fallback_color"`
	FatalOutlineColor   string        `yaml:"fatal_outline_color"`
	FatalOutlineWidth   float64       `yaml:"fatal_outline_width"`
	OutlineOpacity      float64       `yaml:"outline_opacity"`
	FillOpacity         float64       `yaml:"fill_opacity"`
	DisableSpatialIndex bool          `yaml:"disable_spatial_index"`
	Heatmap             heatmapConfig `yaml:"heatmap"`
	Tiles               tilesConfig   `yaml:"tiles"`
}

type heatmapConfig struct {
	ScaleRadius bool                  `yaml:"scale_radius"`
	Radius      float64               `yaml:"radius"`
	MinOpacity  float64               `yaml:"min_opacity"`
	MaxValue    float64               `yaml:"max_value"`
	Gradient    []mvcmap.GradientStop `yaml:"gradient"`
}

type tilesConfig struct {
	URL         string `yaml:"url"`
	Attribution string `yaml:"attribution"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Decode over the current values so absent keys keep them
	fc := c.toFile()
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.fromFile(fc)
	return nil
}

func (c *Config) toFile() fileConfig {
	o := c.Map
	return fileConfig{
		Port:          c.Port,
		DefaultCenter: c.DefaultCenter,
		RegionLevel:   c.RegionLevel,
		Viewport:      c.Viewport,
		CacheBytes:    c.CacheBytes,
		Map: mapConfig{
			MinRadius:           o.MinRadius,
			MaxRadius:           o.MaxRadius,
			RadiusStep:          o.RadiusStep,
			PaddingFactor:       o.PaddingFactor,
			ZoomThreshold:       o.ZoomThreshold,
			CountThreshold:      o.CountThreshold,
			FallbackColor:       o.FallbackColor,
			FatalOutlineColor:   o.FatalOutlineColor,
			FatalOutlineWidth:   o.FatalOutlineWidth,
			OutlineOpacity:      o.OutlineOpacity,
			FillOpacity:         o.FillOpacity,
			DisableSpatialIndex: o.DisableSpatialIndex,
			Heatmap: heatmapConfig{
				ScaleRadius: o.Heatmap.ScaleRadius,
				Radius:      o.Heatmap.Radius,
				MinOpacity:  o.Heatmap.MinOpacity,
				MaxValue:    o.Heatmap.MaxValue,
				Gradient:    o.Heatmap.Gradient,
			},
			Tiles: tilesConfig{
				URL:         o.TileLayer.URL,
				Attribution: o.TileLayer.Attribution,
			},
		},
	}
}

func (c *Config) fromFile(fc fileConfig) {
	c.Port = normalizePort(fc.Port)
	c.DefaultCenter = fc.DefaultCenter
	c.RegionLevel = fc.RegionLevel
	c.Viewport = fc.Viewport
	c.CacheBytes = fc.CacheBytes

	m := fc.Map
	c.Map.MinRadius = m.MinRadius
	c.Map.MaxRadius = m.MaxRadius
	c.Map.RadiusStep = m.RadiusStep
	c.Map.PaddingFactor = m.PaddingFactor
	c.Map.ZoomThreshold = m.ZoomThreshold
	c.Map.CountThreshold = m.CountThreshold
	c.Map.FallbackColor = m.FallbackColor
	c.Map.FatalOutlineColor = m.FatalOutlineColor
	c.Map.FatalOutlineWidth = m.FatalOutlineWidth
	c.Map.OutlineOpacity = m.OutlineOpacity
	c.Map.FillOpacity = m.FillOpacity
	c.Map.DisableSpatialIndex = m.DisableSpatialIndex
	c.Map.Heatmap = mvcmap.HeatmapOptions{
		ScaleRadius: m.Heatmap.ScaleRadius,
		Radius:      m.Heatmap.Radius,
		MinOpacity:  m.Heatmap.MinOpacity,
		MaxValue:    m.Heatmap.MaxValue,
		Gradient:    m.Heatmap.Gradient,
	}
	c.Map.TileLayer = mvcmap.TileLayer{URL: m.Tiles.URL, Attribution: m.Tiles.Attribution}
}

func (c *Config) loadEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = normalizePort(port)
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}

	if v := os.Getenv("MVCMAP_CENTER"); v != "" {
		center, err := parseLatLng(v)
		if err != nil {
			return fmt.Errorf("MVCMAP_CENTER: %w", err)
		}
		c.DefaultCenter = center
	}

	if v := os.Getenv("MVCMAP_REGION_LEVEL"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MVCMAP_REGION_LEVEL: %w", err)
		}
		c.RegionLevel = level
	}

	if v := os.Getenv("MVCMAP_VIEWPORT"); v != "" {
		size, err := parseSize(v)
		if err != nil {
			return fmt.Errorf("MVCMAP_VIEWPORT: %w", err)
		}
		c.Viewport = size
	}

	if v := os.Getenv("MVCMAP_CACHE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MVCMAP_CACHE_BYTES: %w", err)
		}
		c.CacheBytes = n
	}

	return nil
}

// normalizePort accepts "8080" as well as ":8080".
func normalizePort(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// parseLatLng parses "lat,lng".
func parseLatLng(s string) (mvcmap.LatLng, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return mvcmap.LatLng{}, fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return mvcmap.LatLng{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return mvcmap.LatLng{}, fmt.Errorf("invalid longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return mvcmap.LatLng{}, fmt.Errorf("coordinate out of range: %v,%v", lat, lng)
	}
	return mvcmap.LatLng{Lat: lat, Lng: lng}, nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (mvcmap.Size, error) {
	wStr, hStr, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return mvcmap.Size{}, fmt.Errorf("expected WIDTHxHEIGHT, got %q", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(wStr))
	if err != nil {
		return mvcmap.Size{}, fmt.Errorf("invalid width: %w", err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hStr))
	if err != nil {
		return mvcmap.Size{}, fmt.Errorf("invalid height: %w", err)
	}
	return mvcmap.Size{Width: w, Height: h}, nil
}
