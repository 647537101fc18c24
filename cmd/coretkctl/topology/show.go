package topology

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/coreemu/coretk/api"
	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/spf13/cobra"
)

var (
	showCmd = &cobra.Command{
		Use:   "show <session ID>",
		Short: "Print the nodes and links of a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing session ID")
			}
			s, cleanup, err := common.Join(cmd, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer func() {
				// Ignore flushing errors - there's nothing we can do.
				_ = w.Flush()
			}()

			nodes, edges := s.Store().Snapshot()
			common.PrintHeader(w, "ID", "Name", "Kind", "Position", "Interfaces")
			for _, n := range nodes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.0f,%.0f\t%s\n",
					n.NodeID, n.Name, n.Kind, n.Position.X, n.Position.Y,
					common.FormatInterfaces(n.Interfaces))
			}
			fmt.Fprintln(w)
			common.PrintHeader(w, "Link", "Type", "Interface 1", "Interface 2")
			for _, e := range edges {
				fmt.Fprintf(w, "%d-%d\t%s\t%s\t%s\n",
					e.NodeID1, e.NodeID2, e.Type, endpoint(e.Interface1), endpoint(e.Interface2))
			}
			return nil
		},
	}
)

func endpoint(iface *api.Interface) string {
	if iface == nil {
		return "-"
	}
	return common.FormatInterfaces([]*api.Interface{iface})
}
