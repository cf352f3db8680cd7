package overlay

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes gesture and fit tracing to logf.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(c *Controller) {
		c.logf = logf
	}
}

// Controller owns the overlay placement, the gesture interpreter and the
// current viewport size.
type Controller struct {
	state    *State
	gesture  *Interpreter
	viewport Viewport
	logf     func(format string, args ...any)
}

// NewController returns a Controller at the reset baseline with no image and
// an empty viewport.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state: NewState(),
		logf:  func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.gesture = NewInterpreter(c.state, c.logf)
	return c
}

// Snapshot returns the current placement for rendering.
func (c *Controller) Snapshot() Snapshot {
	return c.state.Snapshot()
}

// Mode reports the active gesture mode.
func (c *Controller) Mode() Mode {
	return c.gesture.Mode()
}

// SetViewport records the rendering surface size used by subsequent fits.
func (c *Controller) SetViewport(width, height float64) {
	c.viewport = Viewport{Width: width, Height: height}
}

// Viewport returns the last recorded viewport size.
func (c *Controller) Viewport() Viewport {
	return c.viewport
}

// ContactsChanged forwards a contact set change to the gesture interpreter.
func (c *Controller) ContactsChanged(points []Contact) {
	c.gesture.ContactsChanged(points)
}

// ContactsMoved forwards contact movement to the gesture interpreter.
func (c *Controller) ContactsMoved(points []Contact) {
	c.gesture.ContactsMoved(points)
}

// ContactsEnded ends the active gesture.
func (c *Controller) ContactsEnded() {
	c.gesture.ContactsEnded()
}

// ImageLoaded fits a newly loaded image into the current viewport. Position,
// rotation and mirroring are reset, opacity is kept. On error the placement is
// left as it was and the caller should reject the image.
func (c *Controller) ImageLoaded(width, height int) error {
	scale, err := ComputeInitialFit(width, height, c.viewport.Width, c.viewport.Height)
	if err != nil {
		c.logf("[FIT] %v", err)
		return err
	}
	c.gesture.ContactsEnded()
	c.state.applyFit(Size{Width: width, Height: height}, scale)
	c.logf("[FIT] image %dx%d in %.0fx%.0f -> scale %.3f", width, height, c.viewport.Width, c.viewport.Height, c.state.Scale())
	return nil
}

// Refit re-runs the initial fit for the loaded image against the current
// viewport.
func (c *Controller) Refit() error {
	size := c.state.ImageSize()
	return c.ImageLoaded(size.Width, size.Height)
}

// Reset restores the fixed baseline and drops any active gesture. It does not
// re-fit the image.
func (c *Controller) Reset() {
	c.gesture.ContactsEnded()
	c.state.Reset()
	c.logf("[STATE] reset")
}

// SetOpacity sets the blend opacity, clamped to [0, 1].
func (c *Controller) SetOpacity(v float64) {
	c.state.SetOpacity(v)
}

// SetScale sets the scale factor, clamped to [MinScale, MaxScale].
func (c *Controller) SetScale(v float64) {
	c.state.SetScale(v)
}

// SetRotation sets the rotation in degrees, clamped to [-180, 180].
func (c *Controller) SetRotation(deg float64) {
	c.state.SetRotation(deg)
}

// SetMirrored sets the horizontal flip.
func (c *Controller) SetMirrored(m bool) {
	c.state.SetMirrored(m)
}

// ToggleMirror flips the mirror flag.
func (c *Controller) ToggleMirror() {
	c.state.SetMirrored(!c.state.Mirrored())
}

// ZoomBy multiplies the scale by factor, clamped.
func (c *Controller) ZoomBy(factor float64) {
	c.state.SetScale(c.state.Scale() * factor)
}

// Nudge moves the image by (dx, dy) viewport pixels.
func (c *Controller) Nudge(dx, dy float64) {
	c.state.SetPosition(c.state.Position().Add(Point{X: dx, Y: dy}))
}
