package overlay

// ComputeInitialFit returns the scale at which an image of the given size fits
// entirely inside the viewport (contain, not cover). The axis with the
// relatively larger extent is binding, the other one is letterboxed.
//
// Zero or negative image dimensions and empty or non-finite viewports return a
// *FitError instead of dividing by zero.
func ComputeInitialFit(imageWidth, imageHeight int, viewportWidth, viewportHeight float64) (float64, error) {
	img := Size{Width: imageWidth, Height: imageHeight}
	vp := Viewport{Width: viewportWidth, Height: viewportHeight}
	if img.Empty() || !vp.Valid() {
		return 0, &FitError{Image: img, Viewport: vp}
	}

	imageRatio := float64(imageHeight) / float64(imageWidth)
	viewportRatio := viewportHeight / viewportWidth

	if imageRatio > viewportRatio {
		// Taller than the viewport: height is the binding constraint.
		return viewportHeight / float64(imageHeight), nil
	}
	return viewportWidth / float64(imageWidth), nil
}
