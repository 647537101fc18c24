package topology

import "github.com/spf13/cobra"

var (
	// Cmd exposes the top-level topology command.
	Cmd = &cobra.Command{
		Use:   "topology",
		Short: "Topology management",
	}
)

func init() {
	Cmd.AddCommand(
		applyCmd,
		showCmd,
	)
}
