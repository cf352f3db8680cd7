package ui

import (
	"sync"
	"time"
)

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	Status    string
	LastError error

	ImageSource  string
	Loading      bool
	StreamActive bool
	CameraDevice int
	Fullscreen   bool
	ShowDebug    bool

	Logs []string

	LastUpdated time.Time
}

// AppState tracks the mutable state shared between the Gio event loop and
// the image loader and camera goroutines.
type AppState struct {
	mu sync.RWMutex

	status    string
	lastError error

	imageSource  string
	loading      bool
	streamActive bool
	cameraDevice int
	fullscreen   bool
	showDebug    bool

	logs     []string
	logLimit int

	lastUpdated time.Time
}

// NewState returns a baseline AppState with safe defaults.
func NewState() *AppState {
	return &AppState{
		status:       "No image loaded",
		cameraDevice: -1,
		showDebug:    true,
		logLimit:     200,
		lastUpdated:  time.Now(),
	}
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	return StateSnapshot{
		Status:       s.status,
		LastError:    s.lastError,
		ImageSource:  s.imageSource,
		Loading:      s.loading,
		StreamActive: s.streamActive,
		CameraDevice: s.cameraDevice,
		Fullscreen:   s.fullscreen,
		ShowDebug:    s.showDebug,
		Logs:         logCopy,
		LastUpdated:  s.lastUpdated,
	}
}

// SetStatus updates the user-facing status message.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastUpdated = time.Now()
}

// SetError stores the latest error surfaced to the UI.
func (s *AppState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.lastUpdated = time.Now()
}

// SetLoading marks an image load as in flight.
func (s *AppState) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
	s.lastUpdated = time.Now()
}

// Loading reports whether an image load is in flight.
func (s *AppState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetImageSource records the path or URL of the displayed image.
func (s *AppState) SetImageSource(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageSource = src
	s.lastUpdated = time.Now()
}

// SetStreamActive records whether camera frames are arriving.
func (s *AppState) SetStreamActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamActive == active {
		return
	}
	s.streamActive = active
	s.lastUpdated = time.Now()
}

// SetCameraDevice records the selected capture device, or -1 for none.
func (s *AppState) SetCameraDevice(device int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameraDevice = device
	s.lastUpdated = time.Now()
}

// CameraDevice returns the selected capture device, or -1 for none.
func (s *AppState) CameraDevice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cameraDevice
}

// SetFullscreen records the window mode reported by the platform.
func (s *AppState) SetFullscreen(fullscreen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fullscreen == fullscreen {
		return
	}
	s.fullscreen = fullscreen
	s.lastUpdated = time.Now()
}

// Fullscreen reports whether the window is fullscreen.
func (s *AppState) Fullscreen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fullscreen
}

// SetShowDebug toggles the debug bar.
func (s *AppState) SetShowDebug(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showDebug == show {
		return
	}
	s.showDebug = show
	s.lastUpdated = time.Now()
}

// ShowDebug reports whether the debug bar is visible.
func (s *AppState) ShowDebug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showDebug
}

// AppendLog appends a log message, trimming the oldest entries past the limit.
func (s *AppState) AppendLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, msg)
	if s.logLimit > 0 && len(s.logs) > s.logLimit {
		offset := len(s.logs) - s.logLimit
		s.logs = append([]string(nil), s.logs[offset:]...)
	}
	s.lastUpdated = time.Now()
}
