package mvcmap

import (
	"github.com/dhconnelly/rtreego"
)

// PointMarker is the screen marker of one DataPoint.
//
// Markers are created once per dataset version and discarded wholesale when
// the dataset changes; they are never reparented. That is what makes caching
// the parent container safe: it is resolved on first use and kept for the
// marker's lifetime.
type PointMarker struct {
	Point  DataPoint
	Visual MarkerVisual

	index     int
	validPos  bool
	primitive Primitive

	// parent is the container the primitive is re-attached to after culling.
	parent Container

	// wasVisible mirrors whether primitive is currently attached.
	wasVisible bool
}

// Index returns the marker's position in its layer.
func (m *PointMarker) Index() int { return m.index }

// LatLng returns the marker position.
func (m *PointMarker) LatLng() LatLng { return m.Point.LatLng() }

// Primitive returns the screen primitive backing the marker.
func (m *PointMarker) Primitive() Primitive { return m.primitive }

// Visible reports whether the marker is currently attached to the screen.
func (m *PointMarker) Visible() bool { return m.wasVisible }

// resolveParent returns the cached parent container, resolving it from the
// primitive on first use. A primitive that has never been attached falls back
// to the renderer overlay.
func (m *PointMarker) resolveParent(fallback Container) Container {
	if m.parent == nil {
		if p := m.primitive.Parent(); p != nil {
			m.parent = p
		} else {
			m.parent = fallback
		}
	}
	return m.parent
}

// show attaches the primitive. Returns false when no parent is known.
func (m *PointMarker) show(fallback Container) bool {
	parent := m.resolveParent(fallback)
	if parent == nil {
		return false
	}
	parent.AppendChild(m.primitive)
	m.wasVisible = true
	return true
}

// hide detaches the primitive.
func (m *PointMarker) hide(fallback Container) {
	if parent := m.resolveParent(fallback); parent != nil {
		parent.RemoveChild(m.primitive)
	}
	m.wasVisible = false
}

// indexedMarker wraps a marker for R-tree storage.
type indexedMarker struct {
	marker *PointMarker
}

// Bounds implements rtreego.Spatial interface.
func (im indexedMarker) Bounds() rtreego.Rect {
	p := im.marker.Point
	return degreeRect(p.Latitude, p.Longitude, p.Latitude, p.Longitude)
}
