package session

import "github.com/spf13/cobra"

var (
	// Cmd exposes the top-level session command.
	Cmd = &cobra.Command{
		Use:   "session",
		Short: "Session management",
	}
)

func init() {
	Cmd.AddCommand(
		listCmd,
		createCmd,
		removeCmd,
		inspectCmd,
		stateCmd,
		startCmd,
		stopCmd,
		saveCmd,
		openCmd,
	)
}
