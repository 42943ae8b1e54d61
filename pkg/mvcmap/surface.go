package mvcmap

// Container is a scene-graph parent that screen primitives are attached to.
type Container interface {
	AppendChild(p Primitive)
	RemoveChild(p Primitive)
}

// Primitive is the screen element backing one point marker.
type Primitive interface {
	// Parent returns the container the primitive is attached to, or nil.
	Parent() Container
}

// Renderer creates the screen primitives for point markers.
type Renderer interface {
	NewPrimitive(m *PointMarker) Primitive

	// Overlay returns the container point markers are drawn into.
	Overlay() Container
}

// Layer is anything the map attaches as a unit: the point layer, the
// heatmap, the tile layer or a POI marker.
type Layer interface {
	Kind() LayerKind
}

// Map is the interactive map widget the controller drives.
//
// AddLayer of a *PointLayer attaches every primitive of the layer that is not
// attached yet; RemoveLayer detaches every attached one. Events are delivered
// synchronously, one handler at a time.
type Map interface {
	Renderer

	Zoom() int
	Bounds() Bounds
	SetView(center LatLng, zoom int)
	SetSize(size Size)

	AddLayer(l Layer)
	RemoveLayer(l Layer)

	On(t EventType, h Handler)
}

// EventType names a map event.
type EventType string

const (
	EventZoomEnd EventType = "zoomend"
	EventMoveEnd EventType = "moveend"
	EventResize  EventType = "resize"
	EventClick   EventType = "click"
)

// Event is a map event.
type Event struct {
	Type EventType

	// Target is the clicked layer element for click events: a *PointMarker
	// or a *POIMarker. Nil for viewport events.
	Target any

	// LatLng is the clicked position for click events.
	LatLng LatLng
}

// Handler handles a map event.
type Handler func(Event)
