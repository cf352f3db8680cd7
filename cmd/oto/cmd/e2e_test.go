package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func findTestdata(t *testing.T) string {
	t.Helper()
	for _, dir := range []string{"../../../testdata", "../../testdata"} {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	t.Skip("testdata directory not found")
	return ""
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags to prevent accumulation between tests
	verbose = false
	configPath = ""
	fitViewport = "1280x800"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// TestFitE2E tests the fit command end-to-end
func TestFitE2E(t *testing.T) {
	testdata := findTestdata(t)
	board := filepath.Join(testdata, "board.png")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "exact fit",
			args: []string{"fit", board, "--viewport", "800x600"},
			wantContain: []string{
				"Format:   PNG",
				"Natural:  400x300",
				"Viewport: 800x600",
				"Scale:    2.0000",
				"Display:  800.0x600.0",
				"Bounds:   (0.00, 0.00) - (800.00, 600.00)",
			},
		},
		{
			name: "height bound",
			args: []string{"fit", board, "--viewport", "1920X1080"},
			wantContain: []string{
				"Scale:    3.6000",
				"Display:  1440.0x1080.0",
				"Bounds:   (240.00, 0.00) - (1680.00, 1080.00)",
			},
		},
		{
			name:    "degenerate viewport",
			args:    []string{"fit", board, "--viewport", "0x600"},
			wantErr: true,
		},
		{
			name:    "malformed viewport",
			args:    []string{"fit", board, "--viewport", "800"},
			wantErr: true,
		},
		{
			name:    "missing image",
			args:    []string{"fit", filepath.Join(testdata, "nope.png")},
			wantErr: true,
		},
		{
			name:    "no arguments",
			args:    []string{"fit"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none\nOutput: %s", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestReplayE2E tests the replay command end-to-end
func TestReplayE2E(t *testing.T) {
	testdata := findTestdata(t)
	panPinch := filepath.Join(testdata, "pan_pinch.touch")
	clamps := filepath.Join(testdata, "clamps.touch")
	wrong := filepath.Join(testdata, "wrong_scale.touch")

	t.Run("passing scripts", func(t *testing.T) {
		output, err := execute(t, "replay", panPinch, clamps)
		if err != nil {
			t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
		}
		for _, want := range []string{"ok   " + panPinch, "ok   " + clamps} {
			if !strings.Contains(output, want) {
				t.Errorf("Output missing %q\nGot:\n%s", want, output)
			}
		}
	})

	t.Run("verbose trace", func(t *testing.T) {
		output, err := execute(t, "replay", "-v", panPinch)
		if err != nil {
			t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "pinching") || !strings.Contains(output, "scale=1.5000") {
			t.Errorf("trace missing pinch step\nGot:\n%s", output)
		}
	})

	t.Run("failed expectation", func(t *testing.T) {
		output, err := execute(t, "replay", wrong)
		if err == nil {
			t.Fatalf("Expected error but got none\nOutput: %s", output)
		}
		if !strings.Contains(output, "FAIL "+wrong) || !strings.Contains(output, "line 3: expect scale 2, got 1") {
			t.Errorf("unexpected failure report\nGot:\n%s", output)
		}
	})

	t.Run("missing script", func(t *testing.T) {
		if _, err := execute(t, "replay", filepath.Join(testdata, "nope.touch")); err == nil {
			t.Error("Expected error but got none")
		}
	})
}

func TestParseViewport(t *testing.T) {
	w, h, err := parseViewport(" 1024 x 768 ")
	if err != nil {
		t.Fatalf("parseViewport: %v", err)
	}
	if w != 1024 || h != 768 {
		t.Errorf("got %vx%v, want 1024x768", w, h)
	}
	if _, _, err := parseViewport("wide"); err == nil {
		t.Error("expected error for missing separator")
	}
}
