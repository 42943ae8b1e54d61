// Package mvcmap renders mapped value cases (MVCs) on an interactive map.
//
// An MVC is a point event with a set of participants. The package keeps two
// renderings of the same dataset in sync with the map: discrete circle
// markers and a density heatmap. Which one is attached depends on the current
// zoom level and the dataset size. While markers are shown, markers far
// outside the viewport are detached from the scene so panning a large dataset
// stays cheap.
//
// The map widget itself is not part of this package. It is consumed through
// the Map, Container and Primitive interfaces; package scene provides a
// headless implementation.
//
// # Basic Usage
//
//	m := scene.New(scene.DefaultOptions())
//	ctrl := mvcmap.NewController(m, mvcmap.DefaultOptions())
//	ctrl.OnPointSelected = func(p mvcmap.DataPoint) {
//	    fmt.Printf("selected MVC %d\n", p.ID)
//	}
//
//	ctrl.Mount(mvcmap.Props{
//	    Points:        points,
//	    Dictionary:    mvcmap.ColorDictionary{1: "#e41a1c", 2: "#377eb8"},
//	    DefaultCenter: mvcmap.LatLng{Lat: 55.75, Lng: 37.62},
//	    RegionLevel:   2,
//	}, mvcmap.Size{Width: 1024, Height: 768})
//
// # Choosing a Layer
//
// SelectLayer is the whole policy: below zoom 15 a dataset of more than 1000
// points is drawn as a heatmap, everything else as markers.
//
//	mvcmap.SelectLayer(10, 1500, opts) // LayerHeatmap
//	mvcmap.SelectLayer(16, 1500, opts) // LayerPoints
//
// # Viewport Culling
//
// The Culler attaches markers inside the viewport padded by
// Options.PaddingFactor and detaches the rest. Markers whose visibility did
// not change are not touched, so repeated calls with the same viewport are
// free:
//
//	culler := mvcmap.NewCuller(opts)
//	stats := culler.Update(layers.Points, m.Bounds())
//	fmt.Printf("%d visible, %d attached, %d detached\n",
//	    stats.Visible, stats.Attached, stats.Detached)
//
// # Performance
//
//   - Markers are indexed in an R-tree when the layer is built
//   - Culling examines only index candidates and currently attached markers
//   - Layers are rebuilt wholesale on dataset change, never patched
package mvcmap
