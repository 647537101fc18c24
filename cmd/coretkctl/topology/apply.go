package topology

import (
	"errors"
	"fmt"

	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/coreemu/coretk/log"
	topo "github.com/coreemu/coretk/topology"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	applyCmd = &cobra.Command{
		Use:   "apply <session ID>",
		Short: "Add the nodes and links of a topology file to a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing session ID")
			}
			path, start, err := applyFlags(cmd.Flags())
			if err != nil {
				return err
			}

			f, err := LoadFile(path)
			if err != nil {
				return err
			}

			s, cleanup, err := common.Join(cmd, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := common.Context(cmd)
			placed := make(map[string]int, len(f.Nodes))
			for _, n := range f.Nodes {
				node, err := s.AddNode(ctx, n.Kind, n.Model, topo.Position{X: n.X, Y: n.Y}, n.Name)
				if err != nil {
					return err
				}
				placed[n.Name] = node.LocalID
			}
			for _, l := range f.Links {
				if _, err := s.AddEdge(ctx, placed[l.A], placed[l.B]); err != nil {
					return err
				}
			}
			for _, h := range f.APIHooks() {
				if err := s.AddHook(ctx, h); err != nil {
					return err
				}
			}
			log.G(ctx).WithFields(logrus.Fields{
				"session.id": s.SessionID(),
				"nodes":      len(f.Nodes),
				"links":      len(f.Links),
			}).Info("applied topology")

			if start {
				if err := s.StartSession(ctx); err != nil {
					return err
				}
			}
			fmt.Printf("%d\t%s\n", s.SessionID(), s.State())
			return nil
		},
	}
)

func applyFlags(flags *pflag.FlagSet) (path string, start bool, err error) {
	path, err = flags.GetString("file")
	if err != nil {
		return "", false, err
	}
	if path == "" {
		return "", false, errors.New("missing topology file")
	}
	start, err = flags.GetBool("start")
	return path, start, err
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "Topology file in YAML")
	applyCmd.Flags().Bool("start", false, "Start the session once the topology is applied")
}
