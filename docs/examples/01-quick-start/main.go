package main

import (
	"fmt"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
	"github.com/beetlebugorg/mvcmap/pkg/scene"
)

func main() {
	// Create a headless map and a controller driving it
	m := scene.New(scene.DefaultOptions())
	ctrl := mvcmap.NewController(m, mvcmap.DefaultOptions())

	ctrl.OnMapReady = func(m mvcmap.Map) {
		fmt.Printf("Map ready at zoom %d\n", m.Zoom())
	}
	ctrl.OnPointSelected = func(p mvcmap.DataPoint) {
		fmt.Printf("Selected MVC %d with %d participants\n", p.ID, len(p.Participants))
	}

	props := mvcmap.Props{
		Points: []mvcmap.DataPoint{
			{ID: 1, Latitude: 42.3601, Longitude: -71.0589, ParticipantTypeID: 1,
				Participants: []mvcmap.Participant{{ID: 1}, {ID: 2}}},
			{ID: 2, Latitude: 42.3611, Longitude: -71.0570, ParticipantTypeID: 2,
				Participants: []mvcmap.Participant{{ID: 3, Dead: true}}},
		},
		POIs: []mvcmap.POI{
			{Latitude: 42.3588, Longitude: -71.0602, Name: "City Hall"},
		},
		Dictionary:    mvcmap.ColorDictionary{1: "#e41a1c", 2: "#377eb8"},
		DefaultCenter: mvcmap.LatLng{Lat: 42.3601, Lng: -71.0589},
		RegionLevel:   2,
	}

	// Mount sizes the map, sets the view and draws the layers
	ctrl.Mount(props, mvcmap.Size{Width: 1024, Height: 768})

	fmt.Printf("Active layer: %s\n", ctrl.ActiveLayer())
	fmt.Printf("Markers on screen: %d\n", m.Group().Len())

	for _, marker := range ctrl.Layers().Points.Markers() {
		v := marker.Visual
		fmt.Printf("MVC %d: color %s, radius %.1f, fatal %v\n",
			marker.Point.ID, v.FillColor, v.Radius, v.Fatal())
	}

	// Click the second marker
	m.Click(mvcmap.LatLng{Lat: 42.3611, Lng: -71.0570})
}
