package mvcmap

import (
	"math/rand/v2"
)

// stubPrimitive and stubContainer record attachment without a scene.
type stubPrimitive struct {
	parent *stubContainer
}

func (p *stubPrimitive) Parent() Container {
	if p.parent == nil {
		return nil
	}
	return p.parent
}

type stubContainer struct {
	children map[*stubPrimitive]struct{}
	appends  int
	removes  int
}

func newStubContainer() *stubContainer {
	return &stubContainer{children: make(map[*stubPrimitive]struct{})}
}

func (c *stubContainer) AppendChild(p Primitive) {
	sp := p.(*stubPrimitive)
	if sp.parent == c {
		return
	}
	c.children[sp] = struct{}{}
	sp.parent = c
	c.appends++
}

func (c *stubContainer) RemoveChild(p Primitive) {
	sp := p.(*stubPrimitive)
	if sp.parent != c {
		return
	}
	delete(c.children, sp)
	sp.parent = nil
	c.removes++
}

type stubRenderer struct {
	overlay *stubContainer
}

func newStubRenderer() *stubRenderer {
	return &stubRenderer{overlay: newStubContainer()}
}

func (r *stubRenderer) NewPrimitive(*PointMarker) Primitive { return &stubPrimitive{} }
func (r *stubRenderer) Overlay() Container                  { return r.overlay }

// attachAll attaches every marker the way a map attaches a freshly added layer.
func attachAll(l *PointLayer, c *stubContainer) {
	for _, m := range l.Markers() {
		c.AppendChild(m.Primitive())
	}
	l.SyncAttachment()
}

// randomPoints returns n points uniformly spread over the given box.
func randomPoints(n int, seed uint64, south, west, north, east float64) []DataPoint {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	points := make([]DataPoint, n)
	for i := range points {
		points[i] = DataPoint{
			ID:                int64(i + 1),
			Latitude:          south + rng.Float64()*(north-south),
			Longitude:         west + rng.Float64()*(east-west),
			ParticipantTypeID: 1 + rng.IntN(3),
			Participants:      participants(rng.IntN(6), 0),
		}
	}
	return points
}

var testDictionary = ColorDictionary{1: "#e41a1c", 2: "#377eb8", 3: "#4daf4a"}
