package overlay

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateGesture is reported when a pinch starts with both
	// contacts at the same location. The pinch waits for the contacts to
	// separate instead of failing.
	ErrDegenerateGesture = errors.New("degenerate pinch: contact points coincide")

	// ErrInvalidDimensions is wrapped by FitError.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// FitError reports that no initial fit could be computed for an image. The
// placement is left untouched when it is returned.
type FitError struct {
	Image    Size
	Viewport Viewport
}

func (e *FitError) Error() string {
	if e.Image.Empty() {
		return fmt.Sprintf("fit: image %s: %v", e.Image, ErrInvalidDimensions)
	}
	return fmt.Sprintf("fit: viewport %.0fx%.0f: %v", e.Viewport.Width, e.Viewport.Height, ErrInvalidDimensions)
}

func (e *FitError) Unwrap() error {
	return ErrInvalidDimensions
}
