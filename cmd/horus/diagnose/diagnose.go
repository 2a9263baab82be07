package diagnose

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagPattern string
	flagStage   string
	flagInputs  []string
	flagMatches bool
	flagNoColor bool
)

// Cmd implements `horus diagnose`.
var Cmd = &cobra.Command{
	Use:           "diagnose",
	Short:         "Explain a pattern, run a single stage, or report the environment",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			color.NoColor = true
		}
		if flagPattern != "" {
			return explainPattern(cmd, flagPattern)
		}
		if flagStage != "" {
			return runSingleStage(cmd, flagStage, flagInputs)
		}
		return reportEnvironment(cmd)
	},
}

func init() {
	Cmd.Flags().StringVar(&flagPattern, "pattern", "", "Explain how this pattern would be resolved")
	Cmd.Flags().StringVar(&flagStage, "stage", "", "Run a single stage by name")
	Cmd.Flags().StringArrayVar(&flagInputs, "input", nil, "Input for --stage (repeatable)")
	Cmd.Flags().BoolVar(&flagMatches, "matches", false, "With --pattern, run the resolver and list matches")
	Cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}
