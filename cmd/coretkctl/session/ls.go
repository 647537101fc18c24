package session

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
	listCmd = &cobra.Command{
		Use:   "ls",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("ls command takes no arguments")
			}

			quiet, err := cmd.Flags().GetBool("quiet")
			if err != nil {
				return err
			}

			c, err := common.Dial(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			sessions, err := c.GetSessions(common.Context(cmd))
			if err != nil {
				return err
			}

			var output func(s *api.SessionSummary)
			if !quiet {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				defer func() {
					// Ignore flushing errors - there's nothing we can do.
					_ = w.Flush()
				}()
				common.PrintHeader(w, "ID", "State", "Nodes", "File")
				output = func(s *api.SessionSummary) {
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", s.ID, s.State, s.Nodes, s.File)
				}
			} else {
				output = func(s *api.SessionSummary) { fmt.Println(s.ID) }
			}

			for _, s := range sessions {
				output(s)
			}
			return nil
		},
	}
)

func init() {
	listCmd.Flags().BoolP("quiet", "q", false, "Only display IDs")
}
