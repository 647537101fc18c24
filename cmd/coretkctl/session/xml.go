package session

import (
	"errors"
	"fmt"

	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/spf13/cobra"
)

var (
	saveCmd = &cobra.Command{
		Use:   "save <session ID> <file>",
		Short: "Save a session as XML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("save command takes a session ID and a file")
			}
			s, cleanup, err := common.Join(cmd, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			return s.SaveXML(common.Context(cmd), args[1])
		},
	}

	openCmd = &cobra.Command{
		Use:   "open <file>",
		Short: "Open a session from an XML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("open command takes a file")
			}
			s, cleanup, err := common.Connect(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := s.OpenXML(common.Context(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
)
