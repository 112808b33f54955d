package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/sandrunner/internal/game/replay"
	"github.com/Faultbox/sandrunner/internal/game/world"
)

func newReplayCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "replay <file.yaml>",
		Short: "Re-simulate a playthrough headlessly",
		Long: `Replay every recorded tick of a playthrough without a window, print
the tick each contact starts on and finish with the run totals and
regression id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Playthrough %s (%s, %d ticks)\n", p.ID, p.Settings.Runner.Motion, len(p.History))
			stats, err := replay.Simulate(p, func(step world.StepResult, snap world.Snapshot) {
				if quiet || !step.NewContact {
					return
				}
				marker := ""
				if step.Collision.Outcome == world.OutcomeLethal {
					marker = "  DEAD"
				}
				fmt.Fprintf(out, "  tick %5d  %-7s  angle %+.3f  runner (%d,%d)%s\n",
					step.Tick, step.Collision.Outcome, step.Collision.Angle,
					snap.Runner.Box.X, snap.Runner.Box.Y, marker)
			})
			if err != nil {
				return err
			}

			id, err := replay.RegressionID(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Ticks: %d  Landings: %d  Lethal: %d\n", stats.Ticks, stats.Landings, stats.Lethal)
			fmt.Fprintf(out, "Regression: %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print totals")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file.yaml> <regression-id>",
		Short: "Check a playthrough against a regression id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			id, err := replay.RegressionID(p)
			if err != nil {
				return err
			}
			if id != args[1] {
				return fmt.Errorf("regression mismatch: got %s, want %s", id, args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", id)
			return nil
		},
	}
}
