package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceOverlay/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "oto",
	Short: "OpenTrace Overlay - align reference images over a live camera feed",
	Long: `OpenTrace Overlay (oto) places a semi-transparent reference image, such as a
board layout or schematic, over a live camera view. The image is moved with one
finger, scaled with two and can be rotated and mirrored from the controls bar.

Examples:
  oto ui board.png                    # Launch the overlay with an image
  oto ui https://example.com/pcb.jpg  # Load the image over HTTP
  oto fit board.png --viewport 1920x1080
  oto replay session.touch            # Replay and check a touch script`,
	Version:       "0.9.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the platform config directory)")
}

// loadConfig reads the file selected by --config, or the platform default.
func loadConfig() (*config.AppConfig, string, error) {
	if configPath != "" {
		cfg, err := config.LoadFrom(configPath)
		return cfg, configPath, err
	}
	path, err := config.Path()
	if err != nil {
		return config.Default(), "", err
	}
	cfg, err := config.LoadFrom(path)
	return cfg, path, err
}
