package ui

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

func TestSliderRangeValue(t *testing.T) {
	tests := []struct {
		name string
		r    sliderRange
		pos  float32
		want float64
	}{
		{"opacity min", opacityRange, 0, 0},
		{"opacity max", opacityRange, 1, 1},
		{"opacity snaps to 0.05", opacityRange, 0.52, 0.5},
		{"scale min", scaleRange, 0, 0.1},
		{"scale max", scaleRange, 1, 5},
		{"scale snaps to 0.1", scaleRange, 0.3, 1.6},
		{"rotation centre", rotationRange, 0.5, 0},
		{"rotation snaps to 5", rotationRange, 0.26, -85},
		{"below range", rotationRange, -1, -180},
		{"above range", scaleRange, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.value(tt.pos)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("value(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestSliderRangePositionRoundTrip(t *testing.T) {
	for _, v := range []float64{0.1, 1, 2.5, 5} {
		pos := scaleRange.position(v)
		if got := scaleRange.value(pos); math.Abs(got-v) > 1e-6 {
			t.Errorf("scale %v -> pos %v -> %v", v, pos, got)
		}
	}
	if pos := rotationRange.position(400); pos != 1 {
		t.Errorf("position above range = %v, want 1", pos)
	}
}

func TestDebugLine(t *testing.T) {
	s := overlay.Snapshot{Scale: 1, Opacity: 0.5}
	if got, want := debugLine(s, true), "Stream: Active | Scale: 1.00x | Rotate: 0° | Mirror: Off"; got != want {
		t.Errorf("debugLine = %q, want %q", got, want)
	}

	s = overlay.Snapshot{Scale: 2.5, Rotation: -45, Mirrored: true}
	if got, want := debugLine(s, false), "Stream: Inactive | Scale: 2.50x | Rotate: -45° | Mirror: On"; got != want {
		t.Errorf("debugLine = %q, want %q", got, want)
	}
}

func TestWheelZoomFactor(t *testing.T) {
	if f := wheelZoomFactor(0); f != 1 {
		t.Errorf("factor(0) = %v, want 1", f)
	}
	if f := wheelZoomFactor(40); f >= 1 {
		t.Errorf("scrolling down should zoom out, got %v", f)
	}
	if f := wheelZoomFactor(-40); f <= 1 {
		t.Errorf("scrolling up should zoom in, got %v", f)
	}
	if f := wheelZoomFactor(40) * wheelZoomFactor(-40); math.Abs(f-1) > 1e-12 {
		t.Errorf("opposite scrolls should cancel, got %v", f)
	}
}

func TestCameraLabel(t *testing.T) {
	if got := cameraLabel(-1); got != "Camera: Off" {
		t.Errorf("cameraLabel(-1) = %q", got)
	}
	if got := cameraLabel(2); got != "Camera 2" {
		t.Errorf("cameraLabel(2) = %q", got)
	}
}
