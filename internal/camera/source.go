// Package camera pumps frames from a capture device into the UI.
package camera

import (
	"errors"
	"image"
)

var (
	// ErrNoFrame marks a read that produced no frame yet. The feed retries.
	ErrNoFrame = errors.New("camera: no frame available")

	// ErrClosed is returned by sources and feeds after Close.
	ErrClosed = errors.New("camera: closed")
)

// Source is a frame producer such as a webcam. Read blocks until the next
// frame is available. Implementations need not be safe for concurrent use;
// the Feed serialises all calls.
type Source interface {
	Read() (image.Image, error)
	Close() error
}
