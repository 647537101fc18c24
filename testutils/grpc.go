package testutils

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akutz/memconn"
	"github.com/coreemu/coretk/api"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var listeners uint32

// ServeFakeCore serves core on an in-memory listener and returns a client
// connection to it. The server and the connection are torn down when the
// test ends.
func ServeFakeCore(t testing.TB, core *FakeCore) *grpc.ClientConn {
	name := fmt.Sprintf("fake-core-%d", atomic.AddUint32(&listeners, 1))
	l, err := memconn.Listen("memu", name)
	require.NoError(t, err)

	server := grpc.NewServer(grpc.ForceServerCodec(api.Codec{}))
	api.RegisterCoreAPIServer(server, core)
	go server.Serve(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, name,
		grpc.WithInsecure(),
		grpc.WithBlock(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return memconn.DialContext(ctx, "memu", name)
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		core.Close()
		server.Stop()
		l.Close()
	})
	return conn
}

// ErrorDesc returns the error description of err if it was produced by the rpc system.
// Otherwise, it returns err.Error() or empty string when err is nil.
func ErrorDesc(err error) string {
	if err == nil {
		return ""
	}
	if s, ok := status.FromError(err); ok {
		return s.Message()
	}
	return err.Error()
}
