package mvcmap

import (
	"encoding/json"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBoundsContains(t *testing.T) {
	b := NewBounds(42.3, -71.1, 42.4, -71.0)

	tests := []struct {
		name     string
		lat, lng float64
		expected bool
	}{
		{name: "center", lat: 42.35, lng: -71.05, expected: true},
		{name: "south-west corner", lat: 42.3, lng: -71.1, expected: true},
		{name: "north of bounds", lat: 42.5, lng: -71.05, expected: false},
		{name: "east of bounds", lat: 42.35, lng: -70.9, expected: false},
		{name: "invalid latitude", lat: 120, lng: -71.05, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.lat, tt.lng); got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tt.lat, tt.lng, got, tt.expected)
			}
		})
	}
}

func TestBoundsPad(t *testing.T) {
	b := NewBounds(10, 20, 12, 24) // 2° tall, 4° wide
	padded := b.Pad(0.7)

	if !approxEqual(padded.South(), 8.6) || !approxEqual(padded.North(), 13.4) {
		t.Errorf("Expected latitude 8.6..13.4, got %v..%v", padded.South(), padded.North())
	}
	if !approxEqual(padded.West(), 17.2) || !approxEqual(padded.East(), 26.8) {
		t.Errorf("Expected longitude 17.2..26.8, got %v..%v", padded.West(), padded.East())
	}

	if b.Contains(13, 22) {
		t.Error("Raw bounds should not contain 13,22")
	}
	if !padded.Contains(13, 22) {
		t.Error("Padded bounds should contain 13,22")
	}

	same := b.Pad(0)
	if same.String() != b.String() {
		t.Errorf("Pad(0) changed bounds: %s -> %s", b, same)
	}
}

func TestBoundsPadClampsLatitude(t *testing.T) {
	b := NewBounds(80, 0, 89, 10).Pad(1)
	if b.North() > 90 {
		t.Errorf("Expected north clamped to 90, got %v", b.North())
	}
	if !approxEqual(b.South(), 71) {
		t.Errorf("Expected south 71, got %v", b.South())
	}
}

func TestBoundsAntimeridian(t *testing.T) {
	b := NewBounds(-1, 179, 1, -179)

	if !b.CrossesAntimeridian() {
		t.Fatal("Expected bounds to cross the antimeridian")
	}
	if !b.Contains(0, 179.5) || !b.Contains(0, -179.5) {
		t.Error("Expected points on both sides of ±180 to be contained")
	}
	if b.Contains(0, 0) {
		t.Error("Expected 0,0 outside bounds crossing the antimeridian")
	}

	// A view wider than 360° covers every longitude
	world := NewBounds(-10, -300, 10, 300)
	if !world.Contains(0, 0) || !world.Contains(0, 179.9) || !world.Contains(0, -179.9) {
		t.Error("Expected world-wide bounds to contain all longitudes")
	}

	// Edges beyond ±180 are wrapped
	wrapped := NewBounds(-1, 170, 1, 190)
	if !wrapped.CrossesAntimeridian() {
		t.Error("Expected east edge 190 to wrap across the antimeridian")
	}
	if !wrapped.Contains(0, -175) {
		t.Error("Expected -175 inside bounds wrapped to 170..-170")
	}
}

func TestBoundsPadAntimeridian(t *testing.T) {
	b := NewBounds(-1, 179, 1, -179).Pad(0.5) // 2° tall, 2° wide

	if !b.CrossesAntimeridian() {
		t.Fatal("Expected padded bounds to still cross the antimeridian")
	}
	if !approxEqual(b.West(), 178) || !approxEqual(b.East(), -178) {
		t.Errorf("Expected longitude 178..-178, got %v..%v", b.West(), b.East())
	}
	if !approxEqual(b.South(), -2) || !approxEqual(b.North(), 2) {
		t.Errorf("Expected latitude -2..2, got %v..%v", b.South(), b.North())
	}
	if !b.Contains(1.5, 178.5) || !b.Contains(-1.5, -178.5) {
		t.Error("Expected padded margin on both sides of ±180 to be contained")
	}
	if b.Contains(0, 177) || b.Contains(0, -177) {
		t.Error("Expected points beyond the padding to be outside")
	}

	// Padding a narrow band past 360° covers every longitude
	wide := NewBounds(0, -100, 1, 100).Pad(1)
	if !wide.Contains(0.5, 180) || !wide.Contains(0.5, -150) {
		t.Error("Expected bounds padded past 360° to contain all longitudes")
	}
}

func TestBoundsSearchRects(t *testing.T) {
	tests := []struct {
		name     string
		bounds   Bounds
		expected int
	}{
		{name: "regular", bounds: NewBounds(0, 0, 1, 1), expected: 1},
		{name: "antimeridian", bounds: NewBounds(0, 179, 1, -179), expected: 2},
		{name: "full longitude", bounds: NewBounds(0, -200, 1, 200), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.bounds.searchRects()); got != tt.expected {
				t.Errorf("Expected %d search rects, got %d", tt.expected, got)
			}
		})
	}
}

func TestBoundsMarshalJSON(t *testing.T) {
	data, err := NewBounds(1, 2, 3, 4).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	var decoded struct {
		South, West, North, East float64
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !approxEqual(decoded.South, 1) || !approxEqual(decoded.West, 2) ||
		!approxEqual(decoded.North, 3) || !approxEqual(decoded.East, 4) {
		t.Errorf("Unexpected edges in %s", data)
	}
}
