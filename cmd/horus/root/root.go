package root

import (
	"github.com/flarebyte/horus-scrolls/cmd/horus/diagnose"
	"github.com/flarebyte/horus-scrolls/cmd/horus/resolve"
	"github.com/flarebyte/horus-scrolls/cmd/horus/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for horus.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "horus",
		Short: "CLI: Turn file paths and glob patterns into a stream of resolved, annotated records",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(resolve.Cmd)
	cmd.AddCommand(diagnose.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
