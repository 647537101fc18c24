package common

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coreemu/coretk/backend"
	"github.com/coreemu/coretk/config"
	"github.com/coreemu/coretk/log"
	"github.com/coreemu/coretk/session"
	"github.com/coreemu/coretk/topology"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// DialTimeout bounds the time spent connecting to the backend.
const DialTimeout = 10 * time.Second

var (
	mu        sync.Mutex
	current   *config.Config
	logCloser io.Closer
)

// Setup loads the configuration and configures logging from it. It is
// meant to run as the root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if level, err := cmd.Flags().GetString("log-level"); err == nil && level != "" {
		cfg.Log.Level = level
	}
	closer, err := cfg.Log.Apply(logrus.StandardLogger())
	if err != nil {
		return err
	}
	log.RouteGRPC(context.Background())

	mu.Lock()
	defer mu.Unlock()
	current = cfg
	logCloser = closer
	return nil
}

// Teardown releases what Setup acquired.
func Teardown() {
	mu.Lock()
	defer mu.Unlock()
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// Config returns the configuration loaded by Setup.
func Config(cmd *cobra.Command) (*config.Config, error) {
	mu.Lock()
	cfg := current
	mu.Unlock()
	if cfg != nil {
		return cfg, nil
	}
	return loadConfig(cmd)
}

// Context returns a request context based on CLI arguments.
func Context(cmd *cobra.Command) context.Context {
	return log.WithModule(context.Background(), "coretkctl")
}

// Addr resolves the --server flag. A value with a port is used as is, any
// other value names a configured server.
func Addr(cmd *cobra.Command, cfg *config.Config) (string, error) {
	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return "", err
	}
	if strings.Contains(server, ":") {
		return server, nil
	}
	s, err := cfg.Server(server)
	if err != nil {
		return "", err
	}
	return s.Addr(), nil
}

// Dial connects to the backend selected by the CLI options.
func Dial(cmd *cobra.Command) (*backend.Client, error) {
	cfg, err := Config(cmd)
	if err != nil {
		return nil, err
	}
	addr, err := Addr(cmd, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(Context(cmd), DialTimeout)
	defer cancel()
	return backend.Dial(ctx, addr, grpc.WithBlock())
}

// Connect dials the backend and starts a synchronizer on a new store. The
// returned function stops the synchronizer and closes the connection.
func Connect(cmd *cobra.Command) (*session.Synchronizer, func(), error) {
	cfg, err := Config(cmd)
	if err != nil {
		return nil, nil, err
	}
	addrs, err := cfg.Allocator()
	if err != nil {
		return nil, nil, err
	}
	client, err := Dial(cmd)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(Context(cmd))
	store := topology.NewStore(ctx, addrs)
	s := session.New(client, store, cfg.Session())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.Run(ctx); err != nil && err != context.Canceled {
			log.G(ctx).WithError(err).Error("synchronizer stopped")
		}
	}()

	return s, func() {
		cancel()
		<-done
		store.Close()
		client.Close()
	}, nil
}

// Join connects and joins the session whose id is given in arg.
func Join(cmd *cobra.Command, arg string) (*session.Synchronizer, func(), error) {
	id, err := ParseSessionID(arg)
	if err != nil {
		return nil, nil, err
	}
	s, cleanup, err := Connect(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := s.JoinSession(Context(cmd), id); err != nil {
		cleanup()
		return nil, nil, err
	}
	return s, cleanup, nil
}

// ParseSessionID parses a session id argument.
func ParseSessionID(arg string) (int32, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid session id %q", arg)
	}
	return int32(id), nil
}

// Unwrap returns the transport error of a failed remote call, or err.
func Unwrap(err error) error {
	var rc backend.ErrRemoteCall
	if errors.As(err, &rc) {
		return rc.Err
	}
	return err
}

// ErrorMessage renders err for the user. The message of grpc errors is
// shown without the status details.
func ErrorMessage(err error) string {
	var rc backend.ErrRemoteCall
	if errors.As(err, &rc) {
		if s, ok := status.FromError(rc.Err); ok {
			return rc.Method + ": " + s.Message()
		}
	}
	return err.Error()
}
