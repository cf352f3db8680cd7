// Package imageload loads overlay images from disk or over HTTP.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrEmptyImage is returned for images that decode to zero pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Image is a decoded overlay image. Width and Height are the natural size
// after EXIF orientation has been applied. Format is derived from the file
// extension and may be empty.
type Image struct {
	Source string
	Format string
	Pixels image.Image
	Width  int
	Height int
}

// IsURL reports whether src should be fetched over HTTP.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load reads and decodes src, which is either a file path or an http(s) URL.
func Load(ctx context.Context, src string) (*Image, error) {
	var (
		reader io.ReadCloser
		err    error
	)
	if IsURL(src) {
		reader, err = fetch(ctx, src)
	} else {
		reader, err = os.Open(src)
	}
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	img, err := Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	img.Source = src
	if f, err := imaging.FormatFromFilename(src); err == nil {
		img.Format = f.String()
	}
	return img, nil
}

// Decode decodes an image from r, rotating it according to its EXIF
// orientation tag.
func Decode(r io.Reader) (*Image, error) {
	m, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	size := m.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmptyImage
	}
	return &Image{
		Pixels: m,
		Width:  size.X,
		Height: size.Y,
	}, nil
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP Status %d: %s", resp.StatusCode, resp.Status)
	}
	return resp.Body, nil
}

// Texture returns a copy of img no larger than maxDim on either side, or img
// itself when it already fits or maxDim <= 0.
func Texture(img image.Image, maxDim int) image.Image {
	size := img.Bounds().Size()
	if maxDim <= 0 || (size.X <= maxDim && size.Y <= maxDim) {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}
