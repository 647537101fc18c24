package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "coretk.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	s, err := c.Server("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", s.Addr())

	a, err := c.Allocator()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8", a.Pool().String())
	assert.Equal(t, "275", c.Session().Wlan["basic_range"])
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[[servers]]
name = "lab"
address = "192.168.1.10"
port = 50052

[[servers]]
name = "local"
address = "localhost"
port = 50051

[log]
level = "debug"

[ipam]
pool = "172.16.0.0/12"
subnet_bits = 28

[position]
rate = 2.5
burst = 3

[wlan]
basic_range = "500"
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Servers, 2)
	assert.Equal(t, "lab", c.Servers[0].Name)

	s, err := c.Server("local")
	require.NoError(t, err)
	assert.Equal(t, "localhost:50051", s.Addr())
	_, err = c.Server("missing")
	assert.Error(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)

	a, err := c.Allocator()
	require.NoError(t, err)
	subnet, err := a.NewSubnet()
	require.NoError(t, err)
	assert.Equal(t, "172.16.0.0/28", subnet.String())

	sc := c.Session()
	assert.Equal(t, rate.Limit(2.5), sc.PositionRate)
	assert.Equal(t, 3, sc.PositionBurst)
	assert.Equal(t, "500", sc.Wlan["basic_range"])
	assert.Equal(t, "54000000", sc.Wlan["bandwidth"])
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[ipam]\npool = \"10.0.0.0/24\"\nsubnet_bits = 16\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[log]\nlevel = \"loud\"\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[[servers]]\nname = \"x\"\naddress = \"h\"\nport = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "servers = 3"))
	assert.Error(t, err)
}

func TestLogApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coretk.log")
	logger := logrus.New()
	closer, err := Log{Level: "warn", Format: "json", File: path, MaxSize: 1}.Apply(logger)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.WithField("session.id", 3).Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"kept"`)
	assert.Contains(t, lines[0], `"session.id":3`)

	_, err = Log{Level: "info", Format: "xml"}.Apply(logger)
	assert.Error(t, err)
}
