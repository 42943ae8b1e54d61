package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
	"github.com/beetlebugorg/mvcmap/pkg/scene"
)

func main() {
	center := mvcmap.LatLng{Lat: 40.7128, Lng: -74.0060}

	// 5000 MVCs spread over about 100 km
	rng := rand.New(rand.NewPCG(1, 2))
	points := make([]mvcmap.DataPoint, 5000)
	for i := range points {
		points[i] = mvcmap.DataPoint{
			ID:                int64(i + 1),
			Latitude:          center.Lat + (rng.Float64()*2-1)*0.5,
			Longitude:         center.Lng + (rng.Float64()*2-1)*0.5,
			ParticipantTypeID: 1 + rng.IntN(3),
		}
	}

	m := scene.New(scene.DefaultOptions())
	ctrl := mvcmap.NewController(m, mvcmap.DefaultOptions())
	ctrl.Mount(mvcmap.Props{
		Points:        points,
		Dictionary:    mvcmap.ColorDictionary{1: "#e41a1c", 2: "#377eb8", 3: "#4daf4a"},
		DefaultCenter: center,
		RegionLevel:   1,
	}, mvcmap.Size{Width: 1024, Height: 768})

	report := func(action string) {
		stats := m.Group().Stats()
		fmt.Printf("%-16s zoom %2d  layer %-8s attached %5d  (appends %d, removes %d)\n",
			action, m.Zoom(), ctrl.ActiveLayer(), stats.Children, stats.Appends, stats.Removes)
	}

	// Many points at a low zoom: the heatmap is shown
	report("mount")

	// Zooming in past the threshold switches to markers, culled to the
	// padded viewport
	m.SetZoom(15)
	report("zoom 15")

	// Panning only toggles markers crossing the padded edge
	for i := 0; i < 4; i++ {
		m.PanBy(400, 0)
		report(fmt.Sprintf("pan east %d", i+1))
	}

	m.SetZoom(17)
	report("zoom 17")

	m.SetZoom(12)
	report("zoom 12")
}
