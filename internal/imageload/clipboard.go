package imageload

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error

	// ErrClipboardEmpty is returned when the clipboard holds neither an image
	// nor a path or URL.
	ErrClipboardEmpty = errors.New("clipboard does not contain an image, path or URL")

	errNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
)

func initClipboard() error {
	clipboardOnce.Do(func() {
		switch runtime.GOOS {
		case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
			if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
				clipboardErr = errNoDisplay
				return
			}
		}
		clipboardErr = clipboard.Init()
	})
	return clipboardErr
}

// Clipboard loads the image on the system clipboard. Copied image data is
// decoded directly; copied text is treated as a path or URL and passed to
// Load.
func Clipboard(ctx context.Context) (*Image, error) {
	if err := initClipboard(); err != nil {
		return nil, err
	}
	return fromClipboard(ctx, clipboard.Read(clipboard.FmtImage), clipboard.Read(clipboard.FmtText))
}

func fromClipboard(ctx context.Context, imageData, textData []byte) (*Image, error) {
	if len(imageData) > 0 {
		img, err := Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, err
		}
		img.Source = "clipboard"
		img.Format = "PNG"
		return img, nil
	}

	src := strings.TrimSpace(string(textData))
	src = strings.TrimPrefix(src, "file://")
	if src == "" {
		return nil, ErrClipboardEmpty
	}
	return Load(ctx, src)
}
