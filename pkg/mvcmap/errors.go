package mvcmap

import (
	"fmt"
)

// ErrUnknownParticipantType indicates a participant type missing from the
// color dictionary. The marker is drawn with Options.FallbackColor.
type ErrUnknownParticipantType struct {
	PointID           int64
	ParticipantTypeID int
}

func (e *ErrUnknownParticipantType) Error() string {
	return fmt.Sprintf("mvc %d: unknown participant type %d, using fallback color",
		e.PointID, e.ParticipantTypeID)
}

// ErrInvalidCoordinate indicates a coordinate out of valid bounds.
// The marker is built but never attached, and the point is left out of the heatmap.
type ErrInvalidCoordinate struct {
	PointID  int64
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("mvc %d: invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.PointID, e.Lat, e.Lon)
}

// ErrInvalidOptions indicates an Options field the renderer cannot use.
type ErrInvalidOptions struct {
	Field  string
	Reason string
}

func (e *ErrInvalidOptions) Error() string {
	return fmt.Sprintf("invalid options: %s %s", e.Field, e.Reason)
}
