package mvcmap

import (
	"maps"
	"slices"
)

// Culler attaches point markers near the viewport and detaches the rest.
type Culler struct {
	padding float64
}

// CullStats reports what one culling pass did.
type CullStats struct {
	Visible  int // Markers inside the padded viewport after the pass
	Attached int // Markers attached by this pass
	Detached int // Markers detached by this pass
}

// NewCuller creates a culler padding the viewport by opts.PaddingFactor.
func NewCuller(opts Options) *Culler {
	return &Culler{padding: opts.PaddingFactor}
}

// Update brings marker attachment in line with viewport.
//
// A marker is visible when the padded viewport contains it. Only markers
// whose visibility differs from their current attachment are toggled; calling
// Update twice with the same viewport does nothing the second time.
//
// Candidates come from the layer's R-tree, so only markers near the viewport
// and markers that are currently attached are examined.
func (c *Culler) Update(layer *PointLayer, viewport Bounds) CullStats {
	var stats CullStats
	if layer == nil {
		return stats
	}

	expanded := viewport.Pad(c.padding)

	next := make(map[int]struct{}, len(layer.attached))
	for _, m := range layer.candidates(expanded) {
		if m.validPos && expanded.Contains(m.Point.Latitude, m.Point.Longitude) {
			next[m.index] = struct{}{}
		}
	}

	for _, i := range slices.Sorted(maps.Keys(layer.attached)) {
		if _, ok := next[i]; ok {
			continue
		}
		layer.markers[i].hide(layer.overlay)
		stats.Detached++
	}

	for _, i := range slices.Sorted(maps.Keys(next)) {
		m := layer.markers[i]
		if m.wasVisible {
			continue
		}
		if !m.show(layer.overlay) {
			delete(next, i)
			continue
		}
		stats.Attached++
	}

	layer.attached = next
	stats.Visible = len(next)
	return stats
}
