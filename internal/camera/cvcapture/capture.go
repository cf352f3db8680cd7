// Package cvcapture implements camera.Source on top of an OpenCV video
// capture device.
package cvcapture

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/OpenTraceLab/OpenTraceOverlay/internal/camera"
)

// Capture reads frames from a local capture device.
type Capture struct {
	mu     sync.Mutex
	vc     *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
}

// Open opens device and requests the given frame size. A zero width or height
// keeps the driver default.
func Open(device, width, height int) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", device)
	}

	if width > 0 && height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	log.Printf("[CAMERA] opened device %d (%.0fx%.0f)", device,
		vc.Get(gocv.VideoCaptureFrameWidth), vc.Get(gocv.VideoCaptureFrameHeight))

	return &Capture{vc: vc, mat: gocv.NewMat()}, nil
}

// Read grabs the next frame. The returned image does not alias the capture
// buffer.
func (c *Capture) Read() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, camera.ErrClosed
	}
	if !c.vc.Read(&c.mat) {
		return nil, errors.New("camera read failed")
	}
	if c.mat.Empty() {
		return nil, camera.ErrNoFrame
	}

	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return img, nil
}

// Close releases the device. Further reads return camera.ErrClosed.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.mat.Close()
	return c.vc.Close()
}
