package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/touchscript"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>...",
	Short: "Replay touch scripts against the overlay controller",
	Long: `Parse and replay one or more touch scripts. Each script runs against a fresh
controller; the first failed expect statement aborts with an error.

With -v every statement is printed with the resulting placement.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	parser, err := touchscript.NewParser()
	if err != nil {
		return fmt.Errorf("failed to build script parser: %w", err)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		script, err := parser.ParseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		player := touchscript.NewPlayer(overlay.NewController())
		if verbose {
			player.Step = func(st *touchscript.Statement, snap overlay.Snapshot, mode overlay.Mode) {
				fmt.Fprintf(out, "  %4d  %-9s scale=%.4f pos=%s rot=%.0f mirror=%t opacity=%.2f\n",
					st.Pos.Line, mode, snap.Scale, snap.Position, snap.Rotation, snap.Mirrored, snap.Opacity)
			}
		}

		if err := player.Play(script); err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d statements)\n", path, len(script.Statements))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed", failed, len(args))
	}
	return nil
}
