// Package render maps an overlay placement onto a viewport and draws the
// camera and overlay layers with Gio.
package render

import (
	"image"
	"math"

	"gioui.org/f32"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

// The image is drawn with its own center at the viewport center, then
// translated by Position, rotated, scaled and finally flipped horizontally
// when mirrored. All steps use the image center as origin.

// ImageToScreen converts a point in natural image pixels (origin top-left) to
// viewport pixels.
func ImageToScreen(s overlay.Snapshot, vp overlay.Viewport, p overlay.Point) overlay.Point {
	// Relative to the image center
	x := p.X - float64(s.ImageSize.Width)/2
	y := p.Y - float64(s.ImageSize.Height)/2

	if s.Mirrored {
		x = -x
	}

	x *= s.Scale
	y *= s.Scale

	if s.Rotation != 0 {
		rad := s.Rotation * math.Pi / 180.0
		cos := math.Cos(rad)
		sin := math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	c := vp.Center().Add(s.Position)
	return overlay.Point{X: x + c.X, Y: y + c.Y}
}

// ScreenToImage is the inverse of ImageToScreen. A zero scale maps everything
// to the image center.
func ScreenToImage(s overlay.Snapshot, vp overlay.Viewport, p overlay.Point) overlay.Point {
	c := vp.Center().Add(s.Position)
	x := p.X - c.X
	y := p.Y - c.Y

	if s.Rotation != 0 {
		rad := -s.Rotation * math.Pi / 180.0 // Negative for inverse
		cos := math.Cos(rad)
		sin := math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	if s.Scale != 0 {
		x /= s.Scale
		y /= s.Scale
	} else {
		x, y = 0, 0
	}

	if s.Mirrored {
		x = -x
	}

	return overlay.Point{
		X: x + float64(s.ImageSize.Width)/2,
		Y: y + float64(s.ImageSize.Height)/2,
	}
}

// Affine returns the Gio transform equivalent to ImageToScreen, for use with
// op.Affine when painting the natural-size image.
func Affine(s overlay.Snapshot, vp overlay.Viewport) f32.Affine2D {
	half := f32.Pt(float32(s.ImageSize.Width)/2, float32(s.ImageSize.Height)/2)
	sx := float32(s.Scale)
	if s.Mirrored {
		sx = -sx
	}
	c := vp.Center().Add(s.Position)
	return f32.Affine2D{}.
		Offset(half.Mul(-1)).
		Scale(f32.Point{}, f32.Pt(sx, float32(s.Scale))).
		Rotate(f32.Point{}, float32(s.Rotation*math.Pi/180.0)).
		Offset(f32.Pt(float32(c.X), float32(c.Y)))
}

// Bounds returns the axis-aligned screen rectangle covered by the transformed
// image. Useful for culling and hit testing.
func Bounds(s overlay.Snapshot, vp overlay.Viewport) (lo, hi overlay.Point) {
	w, h := float64(s.ImageSize.Width), float64(s.ImageSize.Height)
	corners := [4]overlay.Point{
		ImageToScreen(s, vp, overlay.Point{X: 0, Y: 0}),
		ImageToScreen(s, vp, overlay.Point{X: w, Y: 0}),
		ImageToScreen(s, vp, overlay.Point{X: 0, Y: h}),
		ImageToScreen(s, vp, overlay.Point{X: w, Y: h}),
	}
	lo, hi = corners[0], corners[0]
	for _, p := range corners[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// CoverScale returns the scale at which a frame fills the viewport completely,
// cropping the overflowing axis. It returns 0 for empty inputs.
func CoverScale(frame image.Point, vp overlay.Viewport) float64 {
	if frame.X <= 0 || frame.Y <= 0 || !vp.Valid() {
		return 0
	}
	return math.Max(vp.Width/float64(frame.X), vp.Height/float64(frame.Y))
}

// CoverAffine centers a cover-scaled frame in the viewport.
func CoverAffine(frame image.Point, vp overlay.Viewport) f32.Affine2D {
	scale := CoverScale(frame, vp)
	if scale == 0 {
		return f32.Affine2D{}
	}
	offX := (vp.Width - float64(frame.X)*scale) / 2
	offY := (vp.Height - float64(frame.Y)*scale) / 2
	return f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(float32(scale), float32(scale))).
		Offset(f32.Pt(float32(offX), float32(offY)))
}
