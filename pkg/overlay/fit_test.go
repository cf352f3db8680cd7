package overlay

import (
	"errors"
	"math"
	"testing"
)

func TestComputeInitialFit(t *testing.T) {
	tests := []struct {
		name   string
		iw, ih int
		vw, vh float64
		want   float64
	}{
		{"tall image height binds", 400, 600, 800, 600, 1.0},
		{"wide image width binds", 1200, 400, 800, 600, 800.0 / 1200.0},
		{"same ratio uses width", 1600, 1200, 800, 600, 0.5},
		{"small image grows", 100, 50, 800, 600, 8.0},
		{"portrait viewport", 1000, 1000, 390, 844, 0.39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeInitialFit(tt.iw, tt.ih, tt.vw, tt.vh)
			if err != nil {
				t.Fatalf("ComputeInitialFit: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("scale = %v, want %v", got, tt.want)
			}
			// Contain: the scaled image never overflows either axis.
			if w := float64(tt.iw) * got; w > tt.vw+1e-9 {
				t.Errorf("scaled width %v overflows viewport %v", w, tt.vw)
			}
			if h := float64(tt.ih) * got; h > tt.vh+1e-9 {
				t.Errorf("scaled height %v overflows viewport %v", h, tt.vh)
			}
		})
	}
}

func TestComputeInitialFitInvalid(t *testing.T) {
	tests := []struct {
		name   string
		iw, ih int
		vw, vh float64
	}{
		{"zero width", 0, 600, 800, 600},
		{"zero height", 400, 0, 800, 600},
		{"negative", -1, 600, 800, 600},
		{"empty viewport", 400, 600, 0, 0},
		{"nan viewport", 400, 600, math.NaN(), 600},
		{"inf viewport", 400, 600, 800, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeInitialFit(tt.iw, tt.ih, tt.vw, tt.vh)
			if err == nil {
				t.Fatalf("expected error, got scale %v", got)
			}
			var fitErr *FitError
			if !errors.As(err, &fitErr) {
				t.Fatalf("expected *FitError, got %T", err)
			}
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("error does not wrap ErrInvalidDimensions: %v", err)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("returned non-finite scale %v", got)
			}
		})
	}
}
