// Package server hosts one MVC map behind an HTTP API.
//
// The server owns a headless scene and the controller driving it. Clients
// push datasets, move the viewport and click, and read back the map state and
// GeoJSON snapshots of the attached layers. All map access is serialized.
package server

import (
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/beetlebugorg/mvcmap/internal/config"
	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
	"github.com/beetlebugorg/mvcmap/pkg/scene"
)

// Server is the HTTP host of one map.
type Server struct {
	mu sync.Mutex

	cfg   *config.Config
	scene *scene.Map
	ctrl  *mvcmap.Controller
	props mvcmap.Props

	// selected is set by the controller when a click hits a point marker.
	selected *mvcmap.DataPoint

	// poiGen counts POI replacements; POI snapshots are keyed by it since
	// POI-only updates keep the layer version.
	poiGen int

	cache   *PayloadCache
	encoder *encoder
	router  *gin.Engine
}

// New creates a server and mounts its map with the configured center, region
// level and viewport.
func New(cfg *config.Config) (*Server, error) {
	enc, err := newEncoder()
	if err != nil {
		return nil, err
	}

	opts := cfg.Map
	if opts.ErrorLog == nil {
		opts.ErrorLog = logWriter{}
	}

	s := &Server{
		cfg:     cfg,
		scene:   scene.New(scene.DefaultOptions()),
		cache:   NewPayloadCache(cfg.CacheBytes),
		encoder: enc,
	}

	s.ctrl = mvcmap.NewController(s.scene, opts)
	s.ctrl.OnMapReady = func(m mvcmap.Map) {
		log.Printf("Map ready at zoom %d, bounds %s", m.Zoom(), m.Bounds())
	}
	s.ctrl.OnPointSelected = func(p mvcmap.DataPoint) {
		s.selected = &p
	}

	s.props = mvcmap.Props{
		DefaultCenter: cfg.DefaultCenter,
		RegionLevel:   cfg.RegionLevel,
	}
	s.ctrl.Mount(s.props, cfg.Viewport)

	s.router = s.setupRouter()
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the server's encoder.
func (s *Server) Close() error { return s.encoder.Close() }

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(Logger(), gin.Recovery(), CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "mvcmap is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/state", s.handleState)
		api.GET("/layers/:kind", s.handleLayer)
		api.GET("/cache", s.handleCacheStats)

		write := api.Group("", RequireToken(s.cfg.JWTSecret))
		{
			write.PUT("/dataset", s.handleDataset)
			write.PUT("/pois", s.handlePOIs)
			write.POST("/viewport", s.handleViewport)
			write.POST("/click", s.handleClick)
		}
	}

	return r
}

// logWriter forwards build diagnostics to the standard logger.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Print(string(p))
	return len(p), nil
}

var _ io.Writer = logWriter{}
