package mvcmap

// SelectLayer chooses the rendering for a dataset of count points at zoom.
//
// Too many markers at low zoom are unreadable and slow to interact with, so
// below opts.ZoomThreshold a dataset of more than opts.CountThreshold points is
// drawn as a heatmap. The threshold is hard: there is no blending between the
// two renderings.
func SelectLayer(zoom, count int, opts Options) LayerKind {
	if zoom < opts.ZoomThreshold && count > opts.CountThreshold {
		return LayerHeatmap
	}
	return LayerPoints
}
