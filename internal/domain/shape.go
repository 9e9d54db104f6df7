package domain

import "time"

type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
)

type Geometry string

const (
	GeometryCircle   Geometry = "circle"
	GeometrySquare   Geometry = "square"
	GeometryTriangle Geometry = "triangle"
)

// Shape is a gallery record. IDs are assigned monotonically by the store and
// never reused; CreatedAt is set at insert time, not taken from the client.
type Shape struct {
	ID        int64
	Name      string
	Color     Color
	Shape     Geometry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidColor reports whether c is one of the defined color literals.
// Matching is case-sensitive.
func ValidColor(c Color) bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow:
		return true
	}
	return false
}

// ValidGeometry reports whether g is one of the defined shape literals.
func ValidGeometry(g Geometry) bool {
	switch g {
	case GeometryCircle, GeometrySquare, GeometryTriangle:
		return true
	}
	return false
}
