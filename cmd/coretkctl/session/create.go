package session

import (
	"errors"
	"fmt"

	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errors.New("create command takes no arguments")
			}

			s, cleanup, err := common.Connect(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := s.CreateSession(common.Context(cmd))
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}

	removeCmd = &cobra.Command{
		Use:     "remove <session ID>",
		Short:   "Shut a session down and delete it",
		Aliases: []string{"rm"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing session ID")
			}
			id, err := common.ParseSessionID(args[0])
			if err != nil {
				return err
			}

			s, cleanup, err := common.Connect(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return s.ShutdownSession(common.Context(cmd), id)
		},
	}
)
