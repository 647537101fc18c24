package common

import (
	"testing"

	"github.com/coreemu/coretk/backend"
	"github.com/coreemu/coretk/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestParseSessionID(t *testing.T) {
	id, err := ParseSessionID("12")
	require.NoError(t, err)
	assert.Equal(t, int32(12), id)

	for _, arg := range []string{"", "0", "-3", "abc", "99999999999"} {
		_, err := ParseSessionID(arg)
		assert.Error(t, err, arg)
	}
}

func TestAddr(t *testing.T) {
	cfg := config.Default()
	cfg.Servers = []config.Server{
		{Name: "local", Address: "127.0.0.1", Port: 50051},
		{Name: "lab", Address: "10.1.0.5", Port: 50052},
	}

	for server, expected := range map[string]string{
		"":               "127.0.0.1:50051",
		"lab":            "10.1.0.5:50052",
		"localhost:9000": "localhost:9000",
	} {
		cmd := &cobra.Command{}
		cmd.Flags().String("server", server, "")
		addr, err := Addr(cmd, cfg)
		require.NoError(t, err)
		assert.Equal(t, expected, addr)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("server", "nowhere", "")
	_, err := Addr(cmd, cfg)
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	st := status.Error(codes.NotFound, "session 4 not found")
	err := errors.Wrap(backend.ErrRemoteCall{Method: "GetSession", Err: st}, "join")

	assert.Equal(t, st, Unwrap(err))
	assert.Equal(t, "GetSession: session 4 not found", ErrorMessage(err))

	plain := errors.New("missing session ID")
	assert.Equal(t, plain, Unwrap(plain))
	assert.Equal(t, "missing session ID", ErrorMessage(plain))
}
