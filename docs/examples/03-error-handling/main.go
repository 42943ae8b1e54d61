package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
	"github.com/beetlebugorg/mvcmap/pkg/scene"
)

func main() {
	opts := mvcmap.DefaultOptions()

	// Per-record problems are also written here as they are found
	opts.ErrorLog = os.Stderr

	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	points := []mvcmap.DataPoint{
		{ID: 1, Latitude: 51.5074, Longitude: -0.1278, ParticipantTypeID: 1},
		{ID: 2, Latitude: 51.5080, Longitude: -0.1290, ParticipantTypeID: 99}, // Unknown type
		{ID: 3, Latitude: 151.5, Longitude: -0.1278, ParticipantTypeID: 1},    // Bad latitude
	}

	m := scene.New(scene.DefaultOptions())
	layers, errs := mvcmap.BuildLayers(points, mvcmap.ColorDictionary{1: "#e41a1c"}, m, opts)

	for _, err := range errs {
		var unknown *mvcmap.ErrUnknownParticipantType
		var invalid *mvcmap.ErrInvalidCoordinate
		switch {
		case errors.As(err, &unknown):
			fmt.Printf("MVC %d drawn with fallback color %s\n", unknown.PointID, opts.FallbackColor)
		case errors.As(err, &invalid):
			fmt.Printf("MVC %d has no valid position and is never shown\n", invalid.PointID)
		default:
			fmt.Printf("Unexpected error: %v\n", err)
		}
	}

	// The batch is never aborted
	fmt.Printf("Markers: %d, heat samples: %d\n",
		layers.Points.Len(), len(layers.Heatmap.Points))

	// Options are checked before use
	bad := mvcmap.DefaultOptions()
	bad.MaxRadius = 1
	var invalidOpts *mvcmap.ErrInvalidOptions
	if err := bad.Validate(); errors.As(err, &invalidOpts) {
		fmt.Printf("Rejected option %s: %v\n", invalidOpts.Field, err)
	}
}
