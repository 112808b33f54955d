package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/sandrunner/internal/storage"
)

func newRunsCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(opts.dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%-36s  %-11s  %6s  %8s  %6s  %-16s  %s\n", "ID", "Motion", "Ticks", "Landings", "Lethal", "Date", "Regression")
			for _, r := range runs {
				regression := r.Regression
				if len(regression) > 12 {
					regression = regression[:12]
				}
				if r.Halted {
					regression += " (halted)"
				}
				fmt.Fprintf(out, "%-36s  %-11s  %6d  %8d  %6d  %-16s  %s\n",
					r.ID, r.Motion, r.Ticks, r.Landings, r.Lethal,
					r.CreatedAt.Local().Format("2006-01-02 15:04"), regression)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}
