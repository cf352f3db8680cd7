package imageload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromClipboardImageData(t *testing.T) {
	img, err := fromClipboard(context.Background(), encodePNG(t, 12, 7), []byte("ignored"))
	if err != nil {
		t.Fatalf("fromClipboard: %v", err)
	}
	if img.Width != 12 || img.Height != 7 || img.Source != "clipboard" {
		t.Errorf("got %dx%d from %q", img.Width, img.Height, img.Source)
	}
}

func TestFromClipboardPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copied.png")
	if err := os.WriteFile(path, encodePNG(t, 5, 9), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := fromClipboard(context.Background(), nil, []byte("  file://"+path+"\n"))
	if err != nil {
		t.Fatalf("fromClipboard: %v", err)
	}
	if img.Source != path || img.Width != 5 || img.Height != 9 {
		t.Errorf("got %dx%d from %q", img.Width, img.Height, img.Source)
	}
}

func TestFromClipboardEmpty(t *testing.T) {
	_, err := fromClipboard(context.Background(), nil, []byte("   "))
	if !errors.Is(err, ErrClipboardEmpty) {
		t.Fatalf("err = %v, want ErrClipboardEmpty", err)
	}
}

func TestFromClipboardCorruptImage(t *testing.T) {
	if _, err := fromClipboard(context.Background(), []byte("not a png"), nil); err == nil {
		t.Fatal("expected decode error")
	}
}
