package mvcmap

import (
	"unsafe"
)

// Props is the host-supplied input of the map.
//
// Points and POIs are compared by identity, not content: passing the same
// slice again is a no-op, passing a new slice triggers a rebuild even when the
// content is equal.
type Props struct {
	Points        []DataPoint
	POIs          []POI
	Dictionary    ColorDictionary
	DefaultCenter LatLng
	RegionLevel   int
}

// Controller keeps the MVC layers of one map in sync with the host's props
// and the map viewport.
//
// A Controller is not safe for concurrent use; all calls, including the map
// event handlers it registers, must come from one goroutine at a time.
//
// Example:
//
//	ctrl := mvcmap.NewController(m, mvcmap.DefaultOptions())
//	ctrl.OnMapReady = func(m mvcmap.Map) { log.Println("map ready") }
//	ctrl.OnPointSelected = func(p mvcmap.DataPoint) { showDetails(p) }
//	ctrl.Mount(props, mvcmap.Size{Width: 1024, Height: 768})
//
//	// later, when the host has new data
//	ctrl.Update(newProps)
type Controller struct {
	// OnMapReady is called once, after the map view is initialized.
	OnMapReady func(m Map)

	// OnPointSelected is called when a point marker is clicked.
	OnPointSelected func(p DataPoint)

	m      Map
	opts   Options
	culler *Culler
	props  Props

	tiles       *TileLayer
	layers      *Layers
	pois        []*POIMarker
	buildErrors []error

	active      LayerKind
	pointsShown bool
	mounted     bool
	ready       bool
}

// NewController creates a controller for m.
func NewController(m Map, opts Options) *Controller {
	return &Controller{
		m:      m,
		opts:   opts,
		culler: NewCuller(opts),
	}
}

// Mount initializes the map and draws props.
//
// The map is sized to parent, centered on props.DefaultCenter at the zoom
// given by ZoomForRegionLevel, and the base tile layer is attached. Viewport
// and click handlers are registered and OnMapReady fires before the first draw.
// Mounting twice is a no-op.
func (c *Controller) Mount(props Props, parent Size) {
	if c.mounted {
		return
	}

	c.m.SetSize(parent)
	c.m.SetView(props.DefaultCenter, ZoomForRegionLevel(props.RegionLevel))

	tiles := c.opts.TileLayer
	c.tiles = &tiles
	c.m.AddLayer(c.tiles)

	c.m.On(EventZoomEnd, c.handleZoomEnd)
	c.m.On(EventMoveEnd, c.handleViewportChange)
	c.m.On(EventResize, c.handleViewportChange)
	c.m.On(EventClick, c.handleLayerClick)

	c.mounted = true
	if !c.ready {
		c.ready = true
		if c.OnMapReady != nil {
			c.OnMapReady(c.m)
		}
	}

	c.props = props
	c.drawLayers()
	c.drawPOIs()
}

// Update applies new props.
//
// A new Points slice tears down and rebuilds both MVC layers and the POI
// markers. A new POIs slice alone rebuilds only the POI markers. Before Mount,
// Update only records props.
func (c *Controller) Update(props Props) {
	if !c.mounted {
		c.props = props
		return
	}

	pointsChanged := !sameSlice(props.Points, c.props.Points)
	poisChanged := !sameSlice(props.POIs, c.props.POIs)
	c.props = props

	switch {
	case pointsChanged:
		c.drawLayers()
		c.drawPOIs()
	case poisChanged:
		c.drawPOIs()
	}
}

// ActiveLayer returns the MVC layer attached to the map.
func (c *Controller) ActiveLayer() LayerKind { return c.active }

// Layers returns the current build of both layers, or nil before the first
// non-empty draw.
func (c *Controller) Layers() *Layers { return c.layers }

// Version returns the current layer build id, or "" when nothing is drawn.
func (c *Controller) Version() string {
	if c.layers == nil {
		return ""
	}
	return c.layers.Version
}

// POIMarkers returns the POI markers on the map.
func (c *Controller) POIMarkers() []*POIMarker { return c.pois }

// BuildErrors returns the non-fatal errors of the last layer build.
func (c *Controller) BuildErrors() []error { return c.buildErrors }

// drawLayers tears down the previous layers and builds new ones from the
// current points. Nothing is attached for an empty dataset.
func (c *Controller) drawLayers() {
	c.teardown()

	layers, errs := BuildLayers(c.props.Points, c.props.Dictionary, c.m, c.opts)
	c.buildErrors = errs
	if layers == nil {
		return
	}
	c.layers = layers
	c.setLayerBasedOnZoom()
}

func (c *Controller) teardown() {
	if c.layers != nil {
		switch c.active {
		case LayerPoints:
			c.m.RemoveLayer(c.layers.Points)
			c.layers.Points.SyncAttachment()
		case LayerHeatmap:
			c.m.RemoveLayer(c.layers.Heatmap)
		}
	}
	c.layers = nil
	c.active = LayerNone
	c.pointsShown = false
}

// drawPOIs replaces the POI markers with markers for the current POIs.
func (c *Controller) drawPOIs() {
	for _, marker := range c.pois {
		c.m.RemoveLayer(marker)
	}

	c.pois = make([]*POIMarker, 0, len(c.props.POIs))
	for _, poi := range c.props.POIs {
		marker := &POIMarker{POI: poi}
		c.m.AddLayer(marker)
		marker.OpenPopup()
		c.pois = append(c.pois, marker)
	}
}

// setLayerBasedOnZoom attaches the layer chosen by SelectLayer for the
// current zoom. Showing the point layer culls immediately so that markers far
// outside the viewport are not left attached.
func (c *Controller) setLayerBasedOnZoom() {
	if c.layers == nil {
		return
	}

	want := SelectLayer(c.m.Zoom(), c.layers.Points.Len(), c.opts)
	if want == c.active {
		c.updateMarkerVisibility()
		return
	}

	switch want {
	case LayerHeatmap:
		if c.active == LayerPoints {
			c.m.RemoveLayer(c.layers.Points)
			c.layers.Points.SyncAttachment()
		}
		c.m.AddLayer(c.layers.Heatmap)
		c.pointsShown = false
	case LayerPoints:
		if c.active == LayerHeatmap {
			c.m.RemoveLayer(c.layers.Heatmap)
		}
		c.m.AddLayer(c.layers.Points)
		c.layers.Points.SyncAttachment()
		c.pointsShown = true
	}
	c.active = want

	c.updateMarkerVisibility()
}

// updateMarkerVisibility culls the point layer against the map viewport.
func (c *Controller) updateMarkerVisibility() {
	if !c.pointsShown || c.layers == nil {
		return
	}
	c.culler.Update(c.layers.Points, c.m.Bounds())
}

func (c *Controller) handleZoomEnd(Event) {
	c.setLayerBasedOnZoom()
}

func (c *Controller) handleViewportChange(Event) {
	c.updateMarkerVisibility()
}

func (c *Controller) handleLayerClick(ev Event) {
	marker, ok := ev.Target.(*PointMarker)
	if !ok || marker == nil || c.OnPointSelected == nil {
		return
	}
	c.OnPointSelected(marker.Point)
}

// sameSlice reports whether a and b share backing array and length.
func sameSlice[T any](a, b []T) bool {
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}
