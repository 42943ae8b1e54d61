package mvcmap

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"
	"github.com/google/uuid"
)

// PointLayer is the discrete-marker rendering of a dataset.
type PointLayer struct {
	markers []*PointMarker
	index   *rtreego.Rtree // Nil when the spatial index is disabled
	overlay Container

	// attached holds the indices of markers whose wasVisible is true.
	attached map[int]struct{}
}

// Kind implements Layer.
func (l *PointLayer) Kind() LayerKind { return LayerPoints }

// Markers returns all markers in dataset order.
func (l *PointLayer) Markers() []*PointMarker { return l.markers }

// Len returns the number of markers.
func (l *PointLayer) Len() int { return len(l.markers) }

// AttachedCount returns the number of markers currently attached.
func (l *PointLayer) AttachedCount() int { return len(l.attached) }

// SyncAttachment resets every marker's visibility flag from the real
// attachment state of its primitive.
//
// The controller calls it after the map attaches or detaches the whole layer.
func (l *PointLayer) SyncAttachment() {
	l.attached = make(map[int]struct{}, len(l.attached))
	for _, m := range l.markers {
		m.wasVisible = m.primitive.Parent() != nil
		if m.wasVisible {
			l.attached[m.index] = struct{}{}
		}
	}
}

// candidates returns the markers that may lie inside bounds.
func (l *PointLayer) candidates(bounds Bounds) []*PointMarker {
	if l.index == nil {
		return l.markers
	}

	var result []*PointMarker
	for _, rect := range bounds.searchRects() {
		for _, spatial := range l.index.SearchIntersect(rect) {
			result = append(result, spatial.(indexedMarker).marker)
		}
	}
	return result
}

// HeatPoint is one weighted sample of the heatmap.
type HeatPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Value float64 `json:"value"`
}

// HeatmapLayer is the density rendering of a dataset.
type HeatmapLayer struct {
	Points []HeatPoint
	Max    float64
	Config HeatmapOptions
}

// Kind implements Layer.
func (h *HeatmapLayer) Kind() LayerKind { return LayerHeatmap }

// Layers is one build of both renderings of a dataset.
type Layers struct {
	// Version identifies this build; a new one is issued on every rebuild.
	Version string

	Points  *PointLayer
	Heatmap *HeatmapLayer
}

// BuildLayers builds the point layer and the heatmap for points.
//
// Every point gets a marker, even when its style or coordinate is bad; such
// problems are returned as non-fatal errors (*ErrUnknownParticipantType,
// *ErrInvalidCoordinate) and written to opts.ErrorLog. A marker with an
// invalid coordinate is never attached and its point is left out of the
// heatmap.
//
// Heatmap samples all carry weight 1 regardless of participant count.
//
// Returns nil layers for an empty dataset.
//
// Example:
//
//	layers, errs := mvcmap.BuildLayers(points, dict, m, mvcmap.DefaultOptions())
//	for _, err := range errs {
//	    log.Printf("mvc map: %v", err)
//	}
//	fmt.Printf("%d markers, %d heat samples\n",
//	    layers.Points.Len(), len(layers.Heatmap.Points))
func BuildLayers(points []DataPoint, dict ColorDictionary, r Renderer, opts Options) (*Layers, []error) {
	if len(points) == 0 {
		return nil, nil
	}

	var errs []error
	report := func(err error) {
		errs = append(errs, err)
		if opts.ErrorLog != nil {
			fmt.Fprintf(opts.ErrorLog, "mvcmap: %v\n", err)
		}
	}

	pointLayer := &PointLayer{
		markers:  make([]*PointMarker, len(points)),
		overlay:  r.Overlay(),
		attached: make(map[int]struct{}),
	}
	if !opts.DisableSpatialIndex {
		// 2D, min=25 children, max=50 children
		pointLayer.index = rtreego.NewTree(2, 25, 50)
	}

	heatmap := &HeatmapLayer{
		Points: make([]HeatPoint, 0, len(points)),
		Max:    opts.Heatmap.MaxValue,
		Config: opts.Heatmap,
	}

	for i, p := range points {
		if _, ok := dict.Color(p.ParticipantTypeID); !ok {
			report(&ErrUnknownParticipantType{PointID: p.ID, ParticipantTypeID: p.ParticipantTypeID})
		}

		marker := &PointMarker{
			Point:    p,
			Visual:   ResolveStyle(p, dict, opts),
			index:    i,
			validPos: s2.LatLngFromDegrees(p.Latitude, p.Longitude).IsValid(),
		}
		marker.primitive = r.NewPrimitive(marker)
		pointLayer.markers[i] = marker

		if !marker.validPos {
			report(&ErrInvalidCoordinate{PointID: p.ID, Lat: p.Latitude, Lon: p.Longitude})
			continue
		}

		if pointLayer.index != nil {
			pointLayer.index.Insert(indexedMarker{marker: marker})
		}
		heatmap.Points = append(heatmap.Points, HeatPoint{
			Lat:   p.Latitude,
			Lng:   p.Longitude,
			Value: 1,
		})
	}

	return &Layers{
		Version: uuid.NewString(),
		Points:  pointLayer,
		Heatmap: heatmap,
	}, errs
}
