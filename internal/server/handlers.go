package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
)

// State is the observable state of the map.
type State struct {
	ActiveLayer mvcmap.LayerKind `json:"active_layer"`
	Version     string           `json:"version"`
	Zoom        int              `json:"zoom"`
	Center      mvcmap.LatLng    `json:"center"`
	Size        mvcmap.Size      `json:"size"`
	Bounds      mvcmap.Bounds    `json:"bounds"`
	Markers     int              `json:"markers"`
	Attached    int              `json:"attached"`
	POIs        int              `json:"pois"`
	BuildErrors []string         `json:"build_errors,omitempty"`
}

// state snapshots the map. Must be called with s.mu locked.
func (s *Server) state() State {
	st := State{
		ActiveLayer: s.ctrl.ActiveLayer(),
		Version:     s.ctrl.Version(),
		Zoom:        s.scene.Zoom(),
		Center:      s.scene.Center(),
		Size:        s.scene.Size(),
		Bounds:      s.scene.Bounds(),
		Attached:    s.scene.Group().Len(),
		POIs:        len(s.ctrl.POIMarkers()),
	}
	if layers := s.ctrl.Layers(); layers != nil {
		st.Markers = layers.Points.Len()
	}
	for _, err := range s.ctrl.BuildErrors() {
		st.BuildErrors = append(st.BuildErrors, err.Error())
	}
	return st
}

func (s *Server) handleState(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	Success(c, s.state())
}

type datasetRequest struct {
	Points     []mvcmap.DataPoint     `json:"points"`
	POIs       []mvcmap.POI           `json:"pois"`
	Dictionary mvcmap.ColorDictionary `json:"dictionary"`
}

// handleDataset replaces the dataset, the POIs and the color dictionary.
// Both MVC layers and the POI markers are rebuilt.
func (s *Server) handleDataset(c *gin.Context) {
	var req datasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, fmt.Sprintf("invalid dataset: %v", err))
		return
	}
	if req.Points == nil {
		req.Points = []mvcmap.DataPoint{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.props.Points = req.Points
	s.props.POIs = req.POIs
	s.props.Dictionary = req.Dictionary
	s.poiGen++
	s.ctrl.Update(s.props)

	// Every snapshot cached so far belongs to a discarded build
	s.cache.Clear()

	Success(c, s.state())
}

type poisRequest struct {
	POIs []mvcmap.POI `json:"pois"`
}

// handlePOIs replaces the POIs only; the MVC layers are kept.
func (s *Server) handlePOIs(c *gin.Context) {
	var req poisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, fmt.Sprintf("invalid pois: %v", err))
		return
	}
	if req.POIs == nil {
		req.POIs = []mvcmap.POI{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.props.POIs = req.POIs
	s.cache.Remove(poiCacheKey(s.poiGen))
	s.poiGen++
	s.ctrl.Update(s.props)

	Success(c, s.state())
}

type viewportRequest struct {
	Zoom   *int           `json:"zoom"`
	Center *mvcmap.LatLng `json:"center"`
	Width  *int           `json:"width"`
	Height *int           `json:"height"`
}

func (r viewportRequest) validate() error {
	if r.Zoom != nil && (*r.Zoom < 0 || *r.Zoom > 30) {
		return fmt.Errorf("zoom must be between 0 and 30, got %d", *r.Zoom)
	}
	if r.Center != nil && (r.Center.Lat < -90 || r.Center.Lat > 90 || r.Center.Lng < -180 || r.Center.Lng > 180) {
		return fmt.Errorf("center out of range: %v,%v", r.Center.Lat, r.Center.Lng)
	}
	if (r.Width == nil) != (r.Height == nil) {
		return fmt.Errorf("width and height must be given together")
	}
	if r.Width != nil && (*r.Width <= 0 || *r.Height <= 0) {
		return fmt.Errorf("size must be positive, got %dx%d", *r.Width, *r.Height)
	}
	return nil
}

// handleViewport resizes, zooms and pans the map. Each change emits the same
// events an interactive map would, so the controller re-selects and culls.
func (s *Server) handleViewport(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, fmt.Sprintf("invalid viewport: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Width != nil {
		s.scene.SetSize(mvcmap.Size{Width: *req.Width, Height: *req.Height})
	}
	switch {
	case req.Center != nil && req.Zoom != nil:
		s.scene.SetView(*req.Center, *req.Zoom)
	case req.Center != nil:
		s.scene.PanTo(*req.Center)
	case req.Zoom != nil:
		s.scene.SetZoom(*req.Zoom)
	}

	Success(c, s.state())
}

type clickRequest struct {
	Lat     *float64 `json:"lat" binding:"required"`
	Lng     *float64 `json:"lng" binding:"required"`
	Version string   `json:"version"`
}

// handleClick clicks the map. A hit on a point marker returns its data
// point; anything else returns 204. A version other than the current layer
// version is rejected with 409, since marker positions may have changed.
func (s *Server) handleClick(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, fmt.Sprintf("invalid click: %v", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Version != "" && req.Version != s.ctrl.Version() {
		Conflict(c, fmt.Sprintf("stale layer version %s, current is %q", req.Version, s.ctrl.Version()))
		return
	}

	s.selected = nil
	s.scene.Click(mvcmap.LatLng{Lat: *req.Lat, Lng: *req.Lng})

	if s.selected == nil {
		c.Status(http.StatusNoContent)
		return
	}
	Success(c, gin.H{"point": s.selected})
}

// handleLayer serves a GeoJSON snapshot of the points, heatmap or POI layer.
// With attached=true the point snapshot holds only markers currently on
// screen.
func (s *Server) handleLayer(c *gin.Context) {
	kind := c.Param("kind")

	attachedOnly := false
	if v := c.Query("attached"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			BadRequest(c, fmt.Sprintf("invalid attached flag %q", v))
			return
		}
		attachedOnly = b
	}

	s.mu.Lock()
	key, fc, err := s.layerSnapshot(kind, attachedOnly)
	s.mu.Unlock()
	if err != nil {
		NotFound(c, err.Error())
		return
	}

	payload, err := s.cache.Get(key, func() (*Payload, error) {
		return s.encoder.encode(fc)
	})
	if err != nil {
		c.Error(err)
		InternalError(c, "failed to encode layer")
		return
	}

	c.Header("Vary", "Accept-Encoding")
	if acceptsZstd(c.GetHeader("Accept-Encoding")) {
		c.Header("Content-Encoding", "zstd")
		c.Data(http.StatusOK, "application/geo+json", payload.Zstd)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", payload.JSON)
}

// layerSnapshot returns the cache key and the FeatureCollection of a layer.
// The collection is built eagerly since the layers may change once s.mu is
// released. Must be called with s.mu locked.
func (s *Server) layerSnapshot(kind string, attachedOnly bool) (string, *geojson.FeatureCollection, error) {
	if kind == mvcmap.LayerPOI.String() || kind == "pois" {
		return poiCacheKey(s.poiGen), mvcmap.POIGeoJSON(s.ctrl.POIMarkers()), nil
	}

	layers := s.ctrl.Layers()
	if layers == nil {
		return "", nil, fmt.Errorf("no dataset loaded")
	}

	switch kind {
	case mvcmap.LayerPoints.String():
		// Marker visibility depends on the active layer and the viewport
		key := fmt.Sprintf("%s/points/%t/%s/%s",
			layers.Version, attachedOnly, s.ctrl.ActiveLayer(), s.scene.Bounds())
		return key, layers.Points.GeoJSON(attachedOnly), nil
	case mvcmap.LayerHeatmap.String():
		return layers.Version + "/heatmap", layers.Heatmap.GeoJSON(), nil
	default:
		return "", nil, fmt.Errorf("unknown layer %q", kind)
	}
}

func (s *Server) handleCacheStats(c *gin.Context) {
	Success(c, s.cache.Stats())
}

func poiCacheKey(gen int) string { return fmt.Sprintf("pois/%d", gen) }
