package mvcmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the markers as a FeatureCollection of points.
//
// With attachedOnly set, only markers currently attached to the screen are
// included. Each feature carries the MVC id, participant type and count, and
// the resolved visual.
func (l *PointLayer) GeoJSON(attachedOnly bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range l.markers {
		if attachedOnly && !m.wasVisible {
			continue
		}
		f := geojson.NewFeature(orb.Point{m.Point.Longitude, m.Point.Latitude})
		f.Properties["id"] = m.Point.ID
		f.Properties["participant_type_id"] = m.Point.ParticipantTypeID
		f.Properties["participants"] = len(m.Point.Participants)
		f.Properties["color"] = m.Visual.Color
		f.Properties["fill_color"] = m.Visual.FillColor
		f.Properties["radius"] = m.Visual.Radius
		f.Properties["outline_width"] = m.Visual.OutlineWidth
		f.Properties["fatal"] = m.Visual.Fatal()
		f.Properties["visible"] = m.wasVisible
		fc.Append(f)
	}
	return fc
}

// GeoJSON returns the heat samples as a FeatureCollection of weighted points.
//
// The collection's foreign members carry the data maximum and the gradient so
// a client can render the overlay the same way.
func (h *HeatmapLayer) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range h.Points {
		f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
		f.Properties["value"] = p.Value
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{
		"max":          h.Max,
		"radius":       h.Config.Radius,
		"scale_radius": h.Config.ScaleRadius,
		"min_opacity":  h.Config.MinOpacity,
		"gradient":     h.Config.Gradient,
	}
	return fc
}

// POIGeoJSON returns POI markers as a FeatureCollection of named points.
func POIGeoJSON(markers []*POIMarker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.POI.Longitude, m.POI.Latitude})
		f.Properties["name"] = m.POI.Name
		f.Properties["popup_open"] = m.PopupOpen
		fc.Append(f)
	}
	return fc
}
