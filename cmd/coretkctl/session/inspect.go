package session

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/spf13/cobra"
)

var (
	inspectCmd = &cobra.Command{
		Use:   "inspect <session ID>",
		Short: "Inspect a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("session ID missing")
			}
			s, cleanup, err := common.Join(cmd, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			w := tabwriter.NewWriter(os.Stdout, 8, 8, 8, ' ', 0)
			defer func() {
				// Ignore flushing errors - there's nothing we can do.
				_ = w.Flush()
			}()

			nodes, edges := s.Store().Snapshot()
			fmt.Fprintf(w, "ID:\t%d\n", s.SessionID())
			fmt.Fprintf(w, "State:\t%s\n", s.State())
			if hooks := s.Hooks(); len(hooks) > 0 {
				fmt.Fprintln(w, "Hooks:")
				for _, h := range hooks {
					fmt.Fprintf(w, "  %s\t%s\n", h.File, h.State)
				}
			}
			fmt.Fprintln(w, "Nodes:")
			for _, n := range nodes {
				fmt.Fprintf(w, "  %d\t%s\t%s\t(%.0f, %.0f)\n", n.NodeID, n.Name, n.Kind, n.Position.X, n.Position.Y)
				common.FprintfIfNotEmpty(w, "    Interfaces:\t%s\n", common.FormatInterfaces(n.Interfaces))
			}
			fmt.Fprintln(w, "Links:")
			for _, e := range edges {
				fmt.Fprintf(w, "  %d-%d\t%s\n", e.NodeID1, e.NodeID2, e.Type)
			}
			return nil
		},
	}
)
