package imageload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	if err := os.WriteFile(path, encodePNG(t, 40, 60), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 40 || img.Height != 60 {
		t.Errorf("size = %dx%d, want 40x60", img.Width, img.Height)
	}
	if img.Source != path {
		t.Errorf("source = %q", img.Source)
	}
	if img.Format != "PNG" {
		t.Errorf("format = %q, want PNG", img.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), path); err == nil {
		t.Error("Load of corrupt file succeeded")
	}
}

func TestLoadURL(t *testing.T) {
	data := encodePNG(t, 12, 7)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ref.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.URL+"/ref.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 12 || img.Height != 7 {
		t.Errorf("size = %dx%d, want 12x7", img.Width, img.Height)
	}

	if _, err := Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("Load of 404 succeeded")
	}
}

func TestIsURL(t *testing.T) {
	for src, want := range map[string]bool{
		"http://example.com/a.png":  true,
		"https://example.com/a.png": true,
		"/tmp/http.png":             false,
		"photo.jpg":                 false,
	} {
		if got := IsURL(src); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 100))

	if got := Texture(img, 0); got != image.Image(img) {
		t.Error("maxDim 0 should return the original image")
	}
	if got := Texture(img, 512); got != image.Image(img) {
		t.Error("image within limit should be returned as is")
	}

	small := Texture(img, 200)
	if size := small.Bounds().Size(); size != image.Pt(200, 50) {
		t.Errorf("texture size = %v, want (200,50)", size)
	}
}
