package scene

import (
	"slices"

	"github.com/beetlebugorg/mvcmap/pkg/mvcmap"
)

// Circle is the vector primitive of one point marker.
type Circle struct {
	marker *mvcmap.PointMarker
	parent *Group
}

// Marker returns the marker the circle draws.
func (c *Circle) Marker() *mvcmap.PointMarker { return c.marker }

// Parent implements mvcmap.Primitive.
func (c *Circle) Parent() mvcmap.Container {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

// Group is a container of circles, the headless stand-in for an SVG group.
type Group struct {
	children map[*Circle]struct{}

	appends int
	removes int
}

// GroupStats counts the mutations applied to a group.
type GroupStats struct {
	Children int // Circles currently attached
	Appends  int // Total AppendChild calls that attached a circle
	Removes  int // Total RemoveChild calls that detached a circle
}

func newGroup() *Group {
	return &Group{children: make(map[*Circle]struct{})}
}

// AppendChild implements mvcmap.Container. A circle attached elsewhere is
// moved into this group.
func (g *Group) AppendChild(p mvcmap.Primitive) {
	c, ok := p.(*Circle)
	if !ok || c.parent == g {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	g.children[c] = struct{}{}
	c.parent = g
	g.appends++
}

// RemoveChild implements mvcmap.Container.
func (g *Group) RemoveChild(p mvcmap.Primitive) {
	c, ok := p.(*Circle)
	if !ok || c.parent != g {
		return
	}
	delete(g.children, c)
	c.parent = nil
	g.removes++
}

// Len returns the number of attached circles.
func (g *Group) Len() int { return len(g.children) }

// Children returns the attached circles in marker order.
func (g *Group) Children() []*Circle {
	result := make([]*Circle, 0, len(g.children))
	for c := range g.children {
		result = append(result, c)
	}
	slices.SortFunc(result, func(a, b *Circle) int {
		return a.marker.Index() - b.marker.Index()
	})
	return result
}

// Stats returns the group's mutation counters.
func (g *Group) Stats() GroupStats {
	return GroupStats{
		Children: len(g.children),
		Appends:  g.appends,
		Removes:  g.removes,
	}
}
