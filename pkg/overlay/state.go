package overlay

import "math"

// Snapshot is a copy of the placement handed to renderers.
type Snapshot struct {
	Scale     float64
	Position  Point
	Rotation  float64 // degrees
	Mirrored  bool
	Opacity   float64
	ImageSize Size
}

// ScaledSize returns the on-screen size of the image at the current scale.
func (s Snapshot) ScaledSize() (float64, float64) {
	return float64(s.ImageSize.Width) * s.Scale, float64(s.ImageSize.Height) * s.Scale
}

// HasImage reports whether an image has been loaded.
func (s Snapshot) HasImage() bool {
	return !s.ImageSize.Empty()
}

// State is the mutable placement of the overlay image. The zero value is not
// the reset baseline; use NewState.
type State struct {
	scale     float64
	position  Point
	rotation  float64
	mirrored  bool
	opacity   float64
	imageSize Size
}

// NewState returns a State at the reset baseline with no image.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Snapshot returns a copy of the current placement.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Scale:     s.scale,
		Position:  s.position,
		Rotation:  s.rotation,
		Mirrored:  s.mirrored,
		Opacity:   s.opacity,
		ImageSize: s.imageSize,
	}
}

// Reset restores scale=1, position=(0,0), rotation=0, mirrored=false and
// opacity=0.5. The loaded image size is kept.
func (s *State) Reset() {
	s.scale = DefaultScale
	s.position = Point{}
	s.rotation = DefaultRotation
	s.mirrored = false
	s.opacity = DefaultOpacity
}

// Scale returns the current scale factor.
func (s *State) Scale() float64 { return s.scale }

// Position returns the current translation from the centered origin.
func (s *State) Position() Point { return s.position }

// Rotation returns the current rotation in degrees.
func (s *State) Rotation() float64 { return s.rotation }

// Mirrored reports whether the image is flipped horizontally.
func (s *State) Mirrored() bool { return s.mirrored }

// Opacity returns the current blend opacity.
func (s *State) Opacity() float64 { return s.opacity }

// ImageSize returns the natural size of the loaded image.
func (s *State) ImageSize() Size { return s.imageSize }

// SetScale stores ClampScale(v). Non-finite values are ignored.
func (s *State) SetScale(v float64) {
	if !isFinite(v) {
		return
	}
	s.scale = ClampScale(v)
}

// SetPosition stores p. Position is unbounded, the image may be panned fully
// off screen. Non-finite coordinates are ignored.
func (s *State) SetPosition(p Point) {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return
	}
	s.position = p
}

// SetRotation stores ClampRotation(deg). Non-finite values are ignored.
func (s *State) SetRotation(deg float64) {
	if !isFinite(deg) {
		return
	}
	s.rotation = ClampRotation(deg)
}

// SetOpacity stores ClampOpacity(v). Non-finite values are ignored.
func (s *State) SetOpacity(v float64) {
	if !isFinite(v) {
		return
	}
	s.opacity = ClampOpacity(v)
}

// SetMirrored sets the horizontal flip.
func (s *State) SetMirrored(m bool) {
	s.mirrored = m
}

// applyFit installs a freshly fitted image. Opacity survives image loads.
func (s *State) applyFit(size Size, scale float64) {
	s.imageSize = size
	s.scale = ClampScale(scale)
	s.position = Point{}
	s.rotation = DefaultRotation
	s.mirrored = false
}

// ClampScale limits v to [MinScale, MaxScale].
func ClampScale(v float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, v))
}

// ClampRotation limits deg to [MinRotation, MaxRotation].
func ClampRotation(deg float64) float64 {
	return math.Max(MinRotation, math.Min(MaxRotation, deg))
}

// ClampOpacity limits v to [MinOpacity, MaxOpacity].
func ClampOpacity(v float64) float64 {
	return math.Max(MinOpacity, math.Min(MaxOpacity, v))
}
