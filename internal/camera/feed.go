package camera

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"
	"time"
)

// retryDelay is the pause after an ErrNoFrame read.
const retryDelay = 10 * time.Millisecond

// Feed reads frames from a Source on a background goroutine and keeps the
// most recent one for the renderer.
type Feed struct {
	src     Source
	onFrame func()

	mu     sync.Mutex
	frame  image.Image
	seq    uint64
	err    error
	active bool

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewFeed wraps src. onFrame, if set, is called after every new frame; the UI
// uses it to invalidate its window.
func NewFeed(src Source, onFrame func()) *Feed {
	return &Feed{src: src, onFrame: onFrame}
}

// Start launches the pump. It must be called at most once.
func (f *Feed) Start(ctx context.Context) {
	ctx, f.cancel = context.WithCancel(ctx)
	f.done = make(chan struct{})

	f.mu.Lock()
	f.active = true
	f.mu.Unlock()

	go f.run(ctx)
}

func (f *Feed) run(ctx context.Context) {
	defer close(f.done)
	defer func() {
		f.mu.Lock()
		f.active = false
		f.mu.Unlock()
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		img, err := f.src.Read()
		switch {
		case errors.Is(err, ErrNoFrame):
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		case err != nil:
			if ctx.Err() == nil {
				log.Printf("[CAMERA] read failed: %v", err)
			}
			f.mu.Lock()
			f.err = err
			f.mu.Unlock()
			return
		}

		f.mu.Lock()
		f.frame = img
		f.seq++
		f.mu.Unlock()

		if f.onFrame != nil {
			f.onFrame()
		}
	}
}

// Latest returns the most recent frame and its sequence number. The frame is
// nil and seq 0 until the first read completes.
func (f *Feed) Latest() (image.Image, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame, f.seq
}

// Active reports whether the pump is running.
func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Err returns the error that stopped the pump, if any.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close stops the pump, waits for it to exit and releases the Source. It is
// safe to call more than once and without Start.
func (f *Feed) Close() error {
	f.closeOnce.Do(func() {
		if f.cancel != nil {
			f.cancel()
		}
		// The source is not safe for a concurrent Close and Read, so the
		// pump has to exit first. Reads return at the device frame rate.
		if f.done != nil {
			<-f.done
		}
		f.closeErr = f.src.Close()
	})
	return f.closeErr
}
