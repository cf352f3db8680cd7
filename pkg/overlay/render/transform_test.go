package render

import (
	"image"
	"math"
	"testing"

	"gioui.org/f32"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

const eps = 1e-6

func near(a, b overlay.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

var vp = overlay.Viewport{Width: 800, Height: 600}

func TestImageCenterFollowsPosition(t *testing.T) {
	s := overlay.Snapshot{
		Scale:     2,
		Position:  overlay.Point{X: 30, Y: -12},
		Rotation:  77,
		Mirrored:  true,
		ImageSize: overlay.Size{Width: 400, Height: 600},
	}
	got := ImageToScreen(s, vp, overlay.Point{X: 200, Y: 300})
	want := overlay.Point{X: 430, Y: 288}
	if !near(got, want, eps) {
		t.Errorf("center maps to %v, want %v", got, want)
	}
}

func TestImageToScreenComposition(t *testing.T) {
	img := overlay.Size{Width: 400, Height: 200}
	topLeft := overlay.Point{X: 0, Y: 0}

	tests := []struct {
		name string
		snap overlay.Snapshot
		want overlay.Point
	}{
		{
			name: "identity",
			snap: overlay.Snapshot{Scale: 1, ImageSize: img},
			want: overlay.Point{X: 200, Y: 200},
		},
		{
			name: "scaled",
			snap: overlay.Snapshot{Scale: 0.5, ImageSize: img},
			want: overlay.Point{X: 300, Y: 250},
		},
		{
			name: "mirrored",
			snap: overlay.Snapshot{Scale: 1, Mirrored: true, ImageSize: img},
			want: overlay.Point{X: 600, Y: 200},
		},
		{
			name: "rotated 90 clockwise",
			snap: overlay.Snapshot{Scale: 1, Rotation: 90, ImageSize: img},
			want: overlay.Point{X: 500, Y: 100},
		},
		{
			name: "translated",
			snap: overlay.Snapshot{Scale: 1, Position: overlay.Point{X: -50, Y: 10}, ImageSize: img},
			want: overlay.Point{X: 150, Y: 210},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageToScreen(tt.snap, vp, topLeft)
			if !near(got, tt.want, eps) {
				t.Errorf("top-left maps to %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScreenToImageRoundTrip(t *testing.T) {
	s := overlay.Snapshot{
		Scale:     1.7,
		Position:  overlay.Point{X: -120, Y: 45},
		Rotation:  -135,
		Mirrored:  true,
		ImageSize: overlay.Size{Width: 640, Height: 480},
	}
	for _, p := range []overlay.Point{{X: 0, Y: 0}, {X: 640, Y: 480}, {X: 13, Y: 401}} {
		back := ScreenToImage(s, vp, ImageToScreen(s, vp, p))
		if !near(back, p, eps) {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}
}

func TestAffineMatchesImageToScreen(t *testing.T) {
	s := overlay.Snapshot{
		Scale:     0.75,
		Position:  overlay.Point{X: 33, Y: -21},
		Rotation:  30,
		Mirrored:  true,
		ImageSize: overlay.Size{Width: 300, Height: 500},
	}
	aff := Affine(s, vp)
	for _, p := range []overlay.Point{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 150, Y: 250}, {X: 17, Y: 480}} {
		q := aff.Transform(f32.Pt(float32(p.X), float32(p.Y)))
		want := ImageToScreen(s, vp, p)
		if !near(overlay.Point{X: float64(q.X), Y: float64(q.Y)}, want, 1e-2) {
			t.Errorf("Affine(%v) = %v, want %v", p, q, want)
		}
	}
}

func TestBounds(t *testing.T) {
	s := overlay.Snapshot{Scale: 1, Rotation: 90, ImageSize: overlay.Size{Width: 400, Height: 200}}
	lo, hi := Bounds(s, vp)
	if !near(lo, overlay.Point{X: 300, Y: 100}, eps) || !near(hi, overlay.Point{X: 500, Y: 500}, eps) {
		t.Errorf("Bounds = %v..%v, want (300,100)..(500,500)", lo, hi)
	}
}

func TestCoverScale(t *testing.T) {
	tests := []struct {
		frame image.Point
		want  float64
	}{
		{image.Pt(1280, 720), 600.0 / 720.0},
		{image.Pt(400, 600), 2},
		{image.Pt(0, 720), 0},
	}
	for _, tt := range tests {
		if got := CoverScale(tt.frame, vp); math.Abs(got-tt.want) > eps {
			t.Errorf("CoverScale(%v) = %v, want %v", tt.frame, got, tt.want)
		}
	}

	aff := CoverAffine(image.Pt(1280, 720), vp)
	center := aff.Transform(f32.Pt(640, 360))
	if math.Abs(float64(center.X)-400) > 1e-2 || math.Abs(float64(center.Y)-300) > 1e-2 {
		t.Errorf("frame center maps to %v, want (400, 300)", center)
	}
}
