package mvcmap

import (
	"math"
)

// MarkerVisual holds the drawing attributes of one point marker.
type MarkerVisual struct {
	Color          string  `json:"color"` // Outline color
	FillColor      string  `json:"fill_color"`
	OutlineWidth   float64 `json:"outline_width"`
	OutlineOpacity float64 `json:"outline_opacity"`
	FillOpacity    float64 `json:"fill_opacity"`
	Radius         float64 `json:"radius"` // Pixels
}

// Fatal reports whether the visual flags a case with deceased participants.
func (v MarkerVisual) Fatal() bool { return v.OutlineWidth > 0 }

// ResolveStyle computes the visual attributes of the marker for p.
//
// The color comes from dict keyed by the participant type; unknown types use
// opts.FallbackColor. The radius grows by opts.RadiusStep per participant from
// opts.MinRadius up to opts.MaxRadius. Cases with a deceased participant get a
// black outline of opts.FatalOutlineWidth, all others no outline.
//
// ResolveStyle has no side effects.
//
// Example:
//
//	v := mvcmap.ResolveStyle(point, mvcmap.ColorDictionary{1: "#e41a1c"}, mvcmap.DefaultOptions())
//	fmt.Println(v.Color, v.Radius)
func ResolveStyle(p DataPoint, dict ColorDictionary, opts Options) MarkerVisual {
	color, ok := dict.Color(p.ParticipantTypeID)
	if !ok {
		color = opts.FallbackColor
	}

	v := MarkerVisual{
		Color:          color,
		FillColor:      color,
		OutlineWidth:   0,
		OutlineOpacity: opts.OutlineOpacity,
		FillOpacity:    opts.FillOpacity,
		Radius:         markerRadius(len(p.Participants), opts),
	}

	if HasDeadParticipants(p) {
		v.Color = opts.FatalOutlineColor
		v.OutlineWidth = opts.FatalOutlineWidth
	}

	return v
}

func markerRadius(participants int, opts Options) float64 {
	radius := opts.MinRadius + float64(participants)*opts.RadiusStep
	return math.Max(opts.MinRadius, math.Min(radius, opts.MaxRadius))
}
