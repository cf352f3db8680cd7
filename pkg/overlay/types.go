package overlay

import (
	"fmt"
	"math"
)

// Placement bounds.
const (
	MinScale = 0.1
	MaxScale = 5.0

	MinRotation = -180.0
	MaxRotation = 180.0

	MinOpacity = 0.0
	MaxOpacity = 1.0
)

// Reset baseline.
const (
	DefaultScale    = 1.0
	DefaultRotation = 0.0
	DefaultOpacity  = 0.5
)

// Point is a position in viewport pixels.
type Point struct {
	X float64
	Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Size is the natural pixel size of an image.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Viewport is the size of the rendering surface in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are finite and positive.
func (v Viewport) Valid() bool {
	return isFinite(v.Width) && isFinite(v.Height) && v.Width > 0 && v.Height > 0
}

// Center returns the middle of the viewport.
func (v Viewport) Center() Point {
	return Point{X: v.Width / 2, Y: v.Height / 2}
}

// Contact is one simultaneous touch or pointer location. ID is stable for the
// lifetime of the contact.
type Contact struct {
	ID int
	X  float64
	Y  float64
}

// Point returns the contact location.
func (c Contact) Point() Point {
	return Point{X: c.X, Y: c.Y}
}

// Mode is the active gesture mode.
type Mode int

const (
	ModeNone Mode = iota
	ModePanning
	ModePinching
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModePanning:
		return "panning"
	case ModePinching:
		return "pinching"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
