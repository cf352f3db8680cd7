package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceOverlay/internal/imageload"
	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay/render"
)

var fitViewport string

var fitCmd = &cobra.Command{
	Use:   "fit <image>",
	Short: "Show how an image is fitted into a viewport",
	Long: `Load an image and print the initial placement the overlay would use for the
given viewport: the contain scale, the displayed size and the screen bounds.`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().StringVar(&fitViewport, "viewport", "1280x800", "viewport size as WIDTHxHEIGHT")
}

func runFit(cmd *cobra.Command, args []string) error {
	vw, vh, err := parseViewport(fitViewport)
	if err != nil {
		return err
	}

	img, err := imageload.Load(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("error loading image: %w", err)
	}

	var opts []overlay.Option
	if verbose {
		opts = append(opts, overlay.WithLogger(func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		}))
	}
	ctrl := overlay.NewController(opts...)
	ctrl.SetViewport(vw, vh)
	if err := ctrl.ImageLoaded(img.Width, img.Height); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	w, h := snap.ScaledSize()
	lo, hi := render.Bounds(snap, ctrl.Viewport())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Image:    %s\n", img.Source)
	if img.Format != "" {
		fmt.Fprintf(out, "Format:   %s\n", img.Format)
	}
	fmt.Fprintf(out, "Natural:  %s\n", snap.ImageSize)
	fmt.Fprintf(out, "Viewport: %.0fx%.0f\n", vw, vh)
	fmt.Fprintf(out, "Scale:    %.4f\n", snap.Scale)
	fmt.Fprintf(out, "Display:  %.1fx%.1f\n", w, h)
	fmt.Fprintf(out, "Bounds:   %s - %s\n", lo, hi)
	return nil
}

// parseViewport parses "WIDTHxHEIGHT".
func parseViewport(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid viewport %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid viewport width %q: %w", ws, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid viewport height %q: %w", hs, err)
	}
	return w, h, nil
}
