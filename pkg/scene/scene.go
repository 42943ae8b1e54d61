// Package scene provides a headless, in-memory map for package mvcmap.
//
// A scene keeps a Web Mercator viewport (center, zoom, pixel size), a
// container of circle primitives for point markers, the attached layers and
// the registered event handlers. Viewport changes emit the same events an
// interactive map would, synchronously and in registration order.
//
// Scenes are used by tests, examples and the HTTP host. A Map is not safe
// for concurrent use.
//
// Example:
//
//	m := scene.New(scene.DefaultOptions())
//	ctrl := mvcmap.NewController(m, mvcmap.DefaultOptions())
//	ctrl.Mount(props, mvcmap.Size{Width: 800, Height: 600})
//
//	m.SetZoom(16)   // emits zoomend, moveend
//	m.PanBy(200, 0) // emits moveend
//	fmt.Println(m.Overlay().(*scene.Group).Len(), "markers on screen")
package scene

import (
	"math"
	"slices"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
)

// Options configures a scene.
type Options struct {
	TileSize int // Pixels per tile edge
	MinZoom  int
	MaxZoom  int

	// POIHitRadius is the click tolerance around POI markers, in pixels.
	POIHitRadius float64
}

// DefaultOptions returns options matching common web maps.
func DefaultOptions() Options {
	return Options{
		TileSize:     256,
		MinZoom:      0,
		MaxZoom:      19,
		POIHitRadius: 12,
	}
}

// Map is a headless implementation of mvcmap.Map.
type Map struct {
	opts Options

	center mvcmap.LatLng
	zoom   int
	size   mvcmap.Size

	overlay  *Group
	layers   []mvcmap.Layer
	handlers map[mvcmap.EventType][]mvcmap.Handler
}

// New creates an empty scene centered on 0,0 at the minimum zoom.
func New(opts Options) *Map {
	defaults := DefaultOptions()
	if opts.TileSize <= 0 {
		opts.TileSize = defaults.TileSize
	}
	if opts.MaxZoom <= opts.MinZoom {
		opts.MaxZoom = max(opts.MinZoom, defaults.MaxZoom)
	}
	return &Map{
		opts:     opts,
		zoom:     opts.MinZoom,
		overlay:  newGroup(),
		handlers: make(map[mvcmap.EventType][]mvcmap.Handler),
	}
}

// NewPrimitive implements mvcmap.Renderer.
func (m *Map) NewPrimitive(marker *mvcmap.PointMarker) mvcmap.Primitive {
	return &Circle{marker: marker}
}

// Overlay implements mvcmap.Renderer. The returned container is a *Group.
func (m *Map) Overlay() mvcmap.Container { return m.overlay }

// Group returns the overlay group.
func (m *Map) Group() *Group { return m.overlay }

// Zoom returns the current zoom level.
func (m *Map) Zoom() int { return m.zoom }

// Center returns the current view center.
func (m *Map) Center() mvcmap.LatLng { return m.center }

// Size returns the viewport size in pixels.
func (m *Map) Size() mvcmap.Size { return m.size }

// Bounds returns the geographic bounds of the viewport.
func (m *Map) Bounds() mvcmap.Bounds {
	return viewBounds(m.center, m.zoom, m.size, m.opts.TileSize)
}

// SetView moves to center at zoom. Emits zoomend when the zoom changes,
// then moveend.
func (m *Map) SetView(center mvcmap.LatLng, zoom int) {
	zoom = m.clampZoom(zoom)
	zoomChanged := zoom != m.zoom
	m.center = center
	m.zoom = zoom

	if zoomChanged {
		m.emit(mvcmap.Event{Type: mvcmap.EventZoomEnd})
	}
	m.emit(mvcmap.Event{Type: mvcmap.EventMoveEnd})
}

// SetZoom changes the zoom around the current center. Emits zoomend and
// moveend when the zoom changes.
func (m *Map) SetZoom(zoom int) {
	zoom = m.clampZoom(zoom)
	if zoom == m.zoom {
		return
	}
	m.zoom = zoom
	m.emit(mvcmap.Event{Type: mvcmap.EventZoomEnd})
	m.emit(mvcmap.Event{Type: mvcmap.EventMoveEnd})
}

// PanTo moves the center without changing the zoom. Emits moveend.
func (m *Map) PanTo(center mvcmap.LatLng) {
	m.center = center
	m.emit(mvcmap.Event{Type: mvcmap.EventMoveEnd})
}

// PanBy moves the view by dx, dy pixels (positive dx pans east, positive dy
// pans south). Emits moveend.
func (m *Map) PanBy(dx, dy float64) {
	m.PanTo(offsetBy(m.center, dx, dy, m.zoom, m.opts.TileSize))
}

// SetSize resizes the viewport. Emits resize when the size changes.
func (m *Map) SetSize(size mvcmap.Size) {
	if size == m.size {
		return
	}
	m.size = size
	m.emit(mvcmap.Event{Type: mvcmap.EventResize})
}

// AddLayer implements mvcmap.Map. Adding a point layer attaches all of its
// primitives that are not attached yet.
func (m *Map) AddLayer(l mvcmap.Layer) {
	if m.HasLayer(l) {
		return
	}
	m.layers = append(m.layers, l)

	if points, ok := l.(*mvcmap.PointLayer); ok {
		for _, marker := range points.Markers() {
			if marker.Primitive().Parent() == nil {
				m.overlay.AppendChild(marker.Primitive())
			}
		}
	}
}

// RemoveLayer implements mvcmap.Map. Removing a point layer detaches all of
// its attached primitives.
func (m *Map) RemoveLayer(l mvcmap.Layer) {
	i := slices.Index(m.layers, l)
	if i < 0 {
		return
	}
	m.layers = slices.Delete(m.layers, i, i+1)

	if points, ok := l.(*mvcmap.PointLayer); ok {
		for _, marker := range points.Markers() {
			if parent := marker.Primitive().Parent(); parent != nil {
				parent.RemoveChild(marker.Primitive())
			}
		}
	}
}

// HasLayer reports whether l is attached.
func (m *Map) HasLayer(l mvcmap.Layer) bool {
	return slices.Contains(m.layers, l)
}

// Layers returns the attached layers in attach order.
func (m *Map) Layers() []mvcmap.Layer {
	return slices.Clone(m.layers)
}

// LayersOfKind returns the attached layers of kind.
func (m *Map) LayersOfKind(kind mvcmap.LayerKind) []mvcmap.Layer {
	var result []mvcmap.Layer
	for _, l := range m.layers {
		if l.Kind() == kind {
			result = append(result, l)
		}
	}
	return result
}

// On implements mvcmap.Map.
func (m *Map) On(t mvcmap.EventType, h mvcmap.Handler) {
	m.handlers[t] = append(m.handlers[t], h)
}

// Click emits a click at pos and returns the clicked target, or nil.
//
// The topmost attached circle whose radius covers pos wins; POI markers are
// checked first since they are drawn above the overlay.
func (m *Map) Click(pos mvcmap.LatLng) any {
	target := m.hitTest(pos)
	m.emit(mvcmap.Event{Type: mvcmap.EventClick, Target: target, LatLng: pos})
	return target
}

func (m *Map) hitTest(pos mvcmap.LatLng) any {
	for i := len(m.layers) - 1; i >= 0; i-- {
		poi, ok := m.layers[i].(*mvcmap.POIMarker)
		if !ok {
			continue
		}
		if m.pixelDistance(pos, poi.LatLng()) <= m.opts.POIHitRadius {
			return poi
		}
	}

	children := m.overlay.Children()
	for i := len(children) - 1; i >= 0; i-- {
		marker := children[i].Marker()
		if m.pixelDistance(pos, marker.LatLng()) <= marker.Visual.Radius {
			return marker
		}
	}
	return nil
}

func (m *Map) pixelDistance(a, b mvcmap.LatLng) float64 {
	dx, dy := pixelOffset(a, b, m.zoom, m.opts.TileSize)
	return math.Hypot(dx, dy)
}

func (m *Map) clampZoom(zoom int) int {
	return max(m.opts.MinZoom, min(zoom, m.opts.MaxZoom))
}

func (m *Map) emit(ev mvcmap.Event) {
	for _, h := range m.handlers[ev.Type] {
		h(ev)
	}
}
