package version

import "github.com/spf13/cobra"

var (
	// Cmd can be added to other commands to provide a version subcommand.
	Cmd = &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			FprintVersion(cmd.OutOrStdout())
		},
	}
)
