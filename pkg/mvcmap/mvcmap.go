package mvcmap

// LatLng is a geographic coordinate in WGS-84 decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Size is a screen size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DataPoint is one mapped value case.
//
// Data points are owned by the host and treated as read-only snapshots.
type DataPoint struct {
	ID                int64         `json:"id"`
	Latitude          float64       `json:"latitude"`
	Longitude         float64       `json:"longitude"`
	ParticipantTypeID int           `json:"participant_type_id"`
	Participants      []Participant `json:"participants"`
}

// LatLng returns the point's coordinate.
func (p DataPoint) LatLng() LatLng {
	return LatLng{Lat: p.Latitude, Lng: p.Longitude}
}

// Participant is a person involved in an MVC.
type Participant struct {
	ID   int64 `json:"id,omitempty"`
	Dead bool  `json:"is_dead"`
}

// HasDeadParticipants reports whether any participant of p is deceased.
func HasDeadParticipants(p DataPoint) bool {
	for _, participant := range p.Participants {
		if participant.Dead {
			return true
		}
	}
	return false
}

// ColorDictionary maps participant type ids to CSS colors.
type ColorDictionary map[int]string

// Color returns the color for a participant type.
//
// Returns false when the type is missing or mapped to an empty string.
func (d ColorDictionary) Color(participantTypeID int) (string, bool) {
	color, ok := d[participantTypeID]
	if !ok || color == "" {
		return "", false
	}
	return color, true
}

// POI is an auxiliary map object shown as a named marker.
type POI struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// LayerKind identifies a layer attached to the map.
type LayerKind int

const (
	// LayerNone means no MVC layer is attached.
	LayerNone LayerKind = iota

	// LayerPoints is the discrete circle-marker rendering.
	LayerPoints

	// LayerHeatmap is the density rendering.
	LayerHeatmap

	// LayerTiles is the base tile layer.
	LayerTiles

	// LayerPOI is a single auxiliary map-object marker.
	LayerPOI
)

// String returns the layer kind name.
func (k LayerKind) String() string {
	switch k {
	case LayerPoints:
		return "points"
	case LayerHeatmap:
		return "heatmap"
	case LayerTiles:
		return "tiles"
	case LayerPOI:
		return "poi"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k LayerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ZoomForRegionLevel returns the initial zoom for a region level hint.
//
// Region levels 2 and deeper (districts, cities) start at zoom 14, wider
// regions at zoom 10.
func ZoomForRegionLevel(regionLevel int) int {
	if regionLevel >= 2 {
		return 14
	}
	return 10
}
