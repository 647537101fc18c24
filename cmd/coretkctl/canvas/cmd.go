package canvas

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreemu/coretk/canvasws"
	"github.com/coreemu/coretk/cmd/coretkctl/common"
	"github.com/coreemu/coretk/log"
	metrics "github.com/docker/go-metrics"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	// Cmd exposes the canvas command.
	Cmd = &cobra.Command{
		Use:   "canvas <session ID>",
		Short: "Join a session and stream its topology over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing session ID")
			}
			addr, err := cmd.Flags().GetString("listen")
			if err != nil {
				return err
			}

			s, cleanup, err := common.Join(cmd, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithCancel(log.WithModule(common.Context(cmd), "canvas"))
			defer cancel()

			mux := http.NewServeMux()
			mux.Handle("/ws", canvasws.NewHandler(ctx, s.Store()))
			mux.Handle("/metrics", metrics.Handler())
			server := &http.Server{Addr: addr, Handler: mux}

			errC := make(chan error, 1)
			go func() {
				errC <- server.ListenAndServe()
			}()
			log.G(ctx).WithField("addr", addr).Infof("streaming session %d", s.SessionID())

			sigC := make(chan os.Signal, 1)
			signal.Notify(sigC, syscall.SIGTERM, syscall.SIGINT)
			defer signal.Stop(sigC)

			select {
			case err := <-errC:
				return err
			case <-sigC:
			}

			cancel()
			shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			return server.Shutdown(shutdownCtx)
		},
	}
)

func init() {
	Cmd.Flags().String("listen", "127.0.0.1:8080", "Address to serve the websocket and metrics on")
}
