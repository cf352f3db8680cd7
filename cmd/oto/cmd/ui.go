package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/OpenTraceOverlay/internal/ui"
)

var (
	uiCameraDevice int
	uiNoCamera     bool
	uiWindowed     bool
)

var uiCmd = &cobra.Command{
	Use:   "ui [image]",
	Short: "Launch the overlay window",
	Long: `Launch the overlay window. The optional argument is a file path or an
http(s) URL of the reference image.

Controls:
  One finger / left drag  - Move the image
  Two fingers             - Scale the image
  Scroll wheel, + / -     - Zoom
  Arrow keys              - Nudge
  R                       - Reset
  M                       - Mirror
  F                       - Fit image to window
  Ctrl+O                  - Open an image file
  Ctrl+V                  - Paste an image, path or URL
  Escape                  - Leave fullscreen`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().IntVar(&uiCameraDevice, "camera", -1, "capture device index (overrides config)")
	uiCmd.Flags().BoolVar(&uiNoCamera, "no-camera", false, "start without the camera underlay")
	uiCmd.Flags().BoolVar(&uiWindowed, "windowed", false, "stay windowed after loading an image")
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		if cfg == nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log.Printf("[CONFIG] %v, using defaults", err)
	}

	stored := *cfg
	if cmd.Flags().Changed("camera") {
		cfg.CameraDevice = uiCameraDevice
		cfg.CameraEnabled = uiCameraDevice >= 0
	}
	if uiNoCamera {
		cfg.CameraEnabled = false
	}
	if uiWindowed {
		cfg.FullscreenOnLoad = false
	}

	opts := appui.Options{
		Config:     cfg,
		Stored:     &stored,
		ConfigPath: path,
		Verbose:    verbose,
	}
	if len(args) == 1 {
		opts.Image = args[0]
	}
	return appui.Run(opts)
}
