// runtool inspects recorded Sand Runner playthroughs, the run ledger and
// sprite sheets without opening a window.
//
// Usage:
//
//	runtool replay <file.yaml>           - Re-simulate a playthrough headlessly
//	runtool verify <file.yaml> <id>      - Check a playthrough against a regression id
//	runtool runs [--limit n]             - List recorded runs
//	runtool atlas <image> --rows --columns --frames
//	                                     - Print the cell grid of a sprite sheet
//
// Global flags:
//
//	--db <path>     - Run ledger path (default: ~/.sandrunner/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	dbPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "runtool",
		Short: "Inspect Sand Runner playthroughs, runs and sprite sheets",
		Long: `runtool works on the files Sand Runner leaves behind.

Available commands:
  replay   - Re-simulate a recorded playthrough and print its outcomes
  verify   - Check that a playthrough still produces a regression id
  runs     - List runs from the ledger
  atlas    - Show how a sprite sheet is cut into frames

Examples:
  runtool replay runs/3f2a....yaml
  runtool verify runs/3f2a....yaml 9c1e...
  runtool runs --limit 5
  runtool atlas assets/runner.png --rows 3 --columns 3 --frames 7`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "~/.sandrunner/runs.db", "Path to the run ledger")

	root.AddCommand(newReplayCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newRunsCmd(opts))
	root.AddCommand(newAtlasCmd())
	return root
}
