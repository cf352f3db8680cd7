package render

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

// ViewportOf returns the viewport described by the layout constraints.
func ViewportOf(gtx layout.Context) overlay.Viewport {
	return overlay.Viewport{
		Width:  float64(gtx.Constraints.Max.X),
		Height: float64(gtx.Constraints.Max.Y),
	}
}

// OverlayLayer draws the reference image with the current placement.
type OverlayLayer struct {
	imgOp   paint.ImageOp
	texture image.Point
	natural overlay.Size
	loaded  bool
}

// SetImage installs a new texture. natural is the image size the placement is
// expressed in; the texture may be a downscaled copy of it.
func (l *OverlayLayer) SetImage(texture image.Image, natural overlay.Size) {
	l.imgOp = paint.NewImageOp(texture)
	l.texture = texture.Bounds().Size()
	l.natural = natural
	l.loaded = true
}

// Clear removes the texture.
func (l *OverlayLayer) Clear() {
	*l = OverlayLayer{}
}

// Loaded reports whether a texture is installed.
func (l *OverlayLayer) Loaded() bool {
	return l.loaded
}

// Layout paints the overlay. It occupies the whole constraint area.
func (l *OverlayLayer) Layout(gtx layout.Context, s overlay.Snapshot) layout.Dimensions {
	dims := layout.Dimensions{Size: gtx.Constraints.Max}
	if !l.loaded || !s.HasImage() || l.texture.X <= 0 || l.texture.Y <= 0 {
		return dims
	}

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	defer op.Affine(Affine(s, ViewportOf(gtx))).Push(gtx.Ops).Pop()

	// Texture pixels -> natural image pixels
	sx := float32(l.natural.Width) / float32(l.texture.X)
	sy := float32(l.natural.Height) / float32(l.texture.Y)
	if sx != 1 || sy != 1 {
		defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(sx, sy))).Push(gtx.Ops).Pop()
	}

	defer paint.PushOpacity(gtx.Ops, float32(s.Opacity)).Pop()
	defer clip.Rect{Max: l.texture}.Push(gtx.Ops).Pop()
	l.imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return dims
}

// CameraLayer draws the most recent camera frame, cover-fitted to the
// viewport, on a black background.
type CameraLayer struct {
	imgOp paint.ImageOp
	size  image.Point
	seq   uint64
	has   bool
}

// Update uploads frame unless seq has already been seen.
func (l *CameraLayer) Update(frame image.Image, seq uint64) {
	if frame == nil || (l.has && seq == l.seq) {
		return
	}
	l.imgOp = paint.NewImageOp(frame)
	l.size = frame.Bounds().Size()
	l.seq = seq
	l.has = true
}

// Layout paints the frame, or plain black before the first frame.
func (l *CameraLayer) Layout(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, color.NRGBA{A: 255})

	dims := layout.Dimensions{Size: gtx.Constraints.Max}
	if !l.has {
		return dims
	}
	defer op.Affine(CoverAffine(l.size, ViewportOf(gtx))).Push(gtx.Ops).Pop()
	defer clip.Rect{Max: l.size}.Push(gtx.Ops).Pop()
	l.imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return dims
}
