package ui

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTraceOverlay/internal/camera"
	"github.com/OpenTraceLab/OpenTraceOverlay/internal/camera/cvcapture"
	"github.com/OpenTraceLab/OpenTraceOverlay/internal/config"
)

// Options configures the overlay window.
type Options struct {
	// Config holds the loaded preferences. Nil means config.Default().
	Config *config.AppConfig
	// Stored is the config as read from disk, before command line overrides.
	// Preference changes made in the UI are saved on top of it. Nil means
	// Config.
	Stored *config.AppConfig
	// ConfigPath is where preferences are saved on exit. Empty means the
	// platform default.
	ConfigPath string
	// Image is an optional path or URL loaded at startup.
	Image string
	// Verbose enables gesture and fit tracing.
	Verbose bool
	// OpenCamera opens a capture device. Nil uses OpenCV.
	OpenCamera func(device, width, height int) (camera.Source, error)
}

// Run launches the Gio UI and blocks until the window closes.
func Run(opts Options) error {
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	go func() {
		w := new(app.Window)
		w.Option(
			app.Title("OpenTrace Overlay"),
			app.Size(unit.Dp(opts.Config.WindowWidth), unit.Dp(opts.Config.WindowHeight)),
		)
		ui := New(w, opts)
		if err := ui.Run(); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}

func openCapture(device, width, height int) (camera.Source, error) {
	c, err := cvcapture.Open(device, width, height)
	if err != nil {
		return nil, err
	}
	return c, nil
}
