package main

import (
	"os"

	"github.com/coreemu/coretk/backend"
	"github.com/coreemu/coretk/cmd/coretkctl/canvas"
	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/coreemu/coretk/cmd/coretkctl/session"
	"github.com/coreemu/coretk/cmd/coretkctl/topology"
	"github.com/coreemu/coretk/version"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/status"
)

func main() {
	c, err := mainCmd.ExecuteC()
	common.Teardown()
	if err != nil {
		c.Println("Error:", common.ErrorMessage(err))
		// if it's not a grpc or backend failure, we assume it's a user error and
		// we display the usage.
		if _, ok := status.FromError(common.Unwrap(err)); !ok && !backend.IsErrRemoteCall(err) {
			c.Println(c.UsageString())
		}

		os.Exit(-1)
	}
}

var (
	mainCmd = &cobra.Command{
		Use:               os.Args[0],
		Short:             "Control emulation sessions",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: common.Setup,
	}
)

func init() {
	mainCmd.PersistentFlags().StringP("server", "s", "", "Address of the session backend, or the name of a configured server")
	mainCmd.PersistentFlags().StringP("config", "c", "", "Path to the TOML configuration file")
	mainCmd.PersistentFlags().StringP("log-level", "l", "", "Log level (options \"debug\", \"info\", \"warn\", \"error\"), overrides the configuration")

	mainCmd.AddCommand(
		session.Cmd,
		topology.Cmd,
		canvas.Cmd,
		version.Cmd,
	)
}
