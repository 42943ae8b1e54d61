package mvcmap

// POIMarker is the marker of one auxiliary map object, with a popup showing
// its name.
type POIMarker struct {
	POI       POI
	PopupOpen bool
}

// Kind implements Layer.
func (p *POIMarker) Kind() LayerKind { return LayerPOI }

// LatLng returns the marker position.
func (p *POIMarker) LatLng() LatLng {
	return LatLng{Lat: p.POI.Latitude, Lng: p.POI.Longitude}
}

// Popup returns the popup text.
func (p *POIMarker) Popup() string { return p.POI.Name }

// OpenPopup shows the marker's popup.
func (p *POIMarker) OpenPopup() { p.PopupOpen = true }
