package session

import (
	"errors"
	"fmt"

	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/coreemu/coretk/session"
	"github.com/spf13/cobra"
)

var (
	stateCmd = &cobra.Command{
		Use:   "state <session ID> <state>",
		Short: "Move a session to another state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("state command takes a session ID and a state")
			}
			return withSession(cmd, args[0], func(s *session.Synchronizer) error {
				return s.SetSessionState(common.Context(cmd), args[1])
			})
		},
	}

	startCmd = &cobra.Command{
		Use:   "start <session ID>",
		Short: "Instantiate a session on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing session ID")
			}
			return withSession(cmd, args[0], func(s *session.Synchronizer) error {
				return s.StartSession(common.Context(cmd))
			})
		},
	}

	stopCmd = &cobra.Command{
		Use:   "stop <session ID>",
		Short: "Stop a running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing session ID")
			}
			return withSession(cmd, args[0], func(s *session.Synchronizer) error {
				return s.StopSession(common.Context(cmd))
			})
		},
	}
)

// withSession joins the session arg, runs fn and prints the resulting state.
func withSession(cmd *cobra.Command, arg string, fn func(s *session.Synchronizer) error) error {
	s, cleanup, err := common.Join(cmd, arg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := fn(s); err != nil {
		return err
	}
	fmt.Printf("%d\t%s\n", s.SessionID(), s.State())
	return nil
}
