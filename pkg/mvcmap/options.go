package mvcmap

import (
	"io"
)

// GradientStop is one color stop of the heatmap gradient.
type GradientStop struct {
	Offset float64 `json:"offset"` // 0.0 - 1.0
	Color  string  `json:"color"`
}

// HeatmapOptions configures the heatmap overlay.
type HeatmapOptions struct {
	// ScaleRadius makes Radius a geographic radius (degrees) that scales
	// with zoom instead of a fixed pixel radius.
	ScaleRadius bool

	Radius     float64
	MinOpacity float64

	// MaxValue is the data value mapped to the top of the gradient.
	MaxValue float64

	Gradient []GradientStop
}

// TileLayer is the base map tile layer.
type TileLayer struct {
	URL         string
	Attribution string
}

// Kind implements Layer.
func (t *TileLayer) Kind() LayerKind { return LayerTiles }

// Options configures style resolution, layer selection and culling.
//
// Options are read-only once passed to a Controller or Culler.
type Options struct {
	MinRadius  float64 // Marker radius with no participants, in pixels
	MaxRadius  float64 // Marker radius cap, in pixels
	RadiusStep float64 // Radius added per participant

	// PaddingFactor pads the viewport by this fraction of its size in each
	// direction before culling, so markers just off screen are already
	// attached when the user pans.
	PaddingFactor float64

	// ZoomThreshold and CountThreshold select the heatmap: below
	// ZoomThreshold with more than CountThreshold points.
	ZoomThreshold  int
	CountThreshold int

	Heatmap HeatmapOptions

	// FallbackColor is used for participant types missing from the dictionary.
	FallbackColor string

	FatalOutlineColor string
	FatalOutlineWidth float64
	OutlineOpacity    float64
	FillOpacity       float64

	// DisableSpatialIndex skips the R-tree and culls with a linear scan.
	DisableSpatialIndex bool

	TileLayer TileLayer

	// ErrorLog is an optional writer for non-fatal per-record problems
	// (unknown participant types, invalid coordinates).
	ErrorLog io.Writer
}

// DefaultOptions returns the options used by the MVC map.
func DefaultOptions() Options {
	return Options{
		MinRadius:      3,
		MaxRadius:      10,
		RadiusStep:     0.5,
		PaddingFactor:  0.7,
		ZoomThreshold:  15,
		CountThreshold: 1000,
		Heatmap: HeatmapOptions{
			ScaleRadius: true,
			Radius:      0.001,
			MinOpacity:  0.1,
			MaxValue:    2,
			Gradient: []GradientStop{
				{Offset: 0, Color: "white"},
				{Offset: 0.25, Color: "yellow"},
				{Offset: 0.5, Color: "orange"},
				{Offset: 1, Color: "red"},
			},
		},
		FallbackColor:     "#3388ff",
		FatalOutlineColor: "#000000",
		FatalOutlineWidth: 2,
		OutlineOpacity:    0.5,
		FillOpacity:       1,
		TileLayer: TileLayer{
			URL:         "https://cartodb-basemaps-{s}.global.ssl.fastly.net/light_all/{z}/{x}/{y}{r}.png",
			Attribution: `&copy; <a href="http://www.openstreetmap.org/copyright">OpenStreetMap</a> &copy; <a href="http://cartodb.com/attributions">CartoDB</a>`,
		},
	}
}

// Validate checks the options for values the renderer cannot work with.
func (o Options) Validate() error {
	if o.MinRadius <= 0 {
		return &ErrInvalidOptions{Field: "MinRadius", Reason: "must be positive"}
	}
	if o.MaxRadius < o.MinRadius {
		return &ErrInvalidOptions{Field: "MaxRadius", Reason: "must not be below MinRadius"}
	}
	if o.RadiusStep < 0 {
		return &ErrInvalidOptions{Field: "RadiusStep", Reason: "must not be negative"}
	}
	if o.PaddingFactor < 0 {
		return &ErrInvalidOptions{Field: "PaddingFactor", Reason: "must not be negative"}
	}
	if o.CountThreshold < 0 {
		return &ErrInvalidOptions{Field: "CountThreshold", Reason: "must not be negative"}
	}
	if o.Heatmap.MaxValue <= 0 {
		return &ErrInvalidOptions{Field: "Heatmap.MaxValue", Reason: "must be positive"}
	}
	if len(o.Heatmap.Gradient) == 0 {
		return &ErrInvalidOptions{Field: "Heatmap.Gradient", Reason: "needs at least one stop"}
	}
	for _, stop := range o.Heatmap.Gradient {
		if stop.Offset < 0 || stop.Offset > 1 {
			return &ErrInvalidOptions{Field: "Heatmap.Gradient", Reason: "offsets must be within [0, 1]"}
		}
	}
	if o.FallbackColor == "" {
		return &ErrInvalidOptions{Field: "FallbackColor", Reason: "must not be empty"}
	}
	return nil
}
