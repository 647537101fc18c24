// Package config loads the client configuration from a TOML file.
package config

import (
	"net"
	"net/netip"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/coreemu/coretk/internal/ipam"
	"github.com/coreemu/coretk/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config is the client configuration.
type Config struct {
	Servers  []Server          `toml:"servers"`
	Log      Log               `toml:"log"`
	IPAM     IPAM              `toml:"ipam"`
	Position Position          `toml:"position"`
	Wlan     map[string]string `toml:"wlan"`
}

// Server is a session backend the client can connect to.
type Server struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
	Port    int    `toml:"port"`
}

// Addr returns the dial address of the server.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Address, strconv.Itoa(s.Port))
}

// IPAM configures interface address allocation.
type IPAM struct {
	Pool       string `toml:"pool"`
	SubnetBits int    `toml:"subnet_bits"`
}

// Position configures how often node positions are pushed while dragging.
type Position struct {
	Rate  float64 `toml:"rate"`
	Burst int     `toml:"burst"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Servers: []Server{{Name: "example", Address: "127.0.0.1", Port: 50051}},
		Log: Log{
			Level:      "info",
			Format:     "text",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		IPAM: IPAM{
			Pool:       ipam.DefaultPool,
			SubnetBits: ipam.DefaultSubnetBits,
		},
		Position: Position{Rate: 10, Burst: 1},
		Wlan:     session.DefaultWlanConfig(),
	}
}

// Load reads the file at path over the defaults. Servers listed in the file
// replace the default server.
func Load(path string) (*Config, error) {
	c := Default()
	c.Servers = nil
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrapf(err, "failed to load config %s", path)
	}
	if len(c.Servers) == 0 {
		c.Servers = Default().Servers
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

// Validate checks the configuration for values that can't be used.
func (c *Config) Validate() error {
	for _, s := range c.Servers {
		if s.Address == "" {
			return errors.Errorf("server %q has no address", s.Name)
		}
		if s.Port <= 0 || s.Port > 65535 {
			return errors.Errorf("server %q has invalid port %d", s.Name, s.Port)
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := c.Allocator(); err != nil {
		return err
	}
	if c.Position.Rate < 0 {
		return errors.Errorf("negative position rate %v", c.Position.Rate)
	}
	return nil
}

// Server returns the server called name, or the first server when name is
// empty.
func (c *Config) Server(name string) (Server, error) {
	for _, s := range c.Servers {
		if name == "" || s.Name == name {
			return s, nil
		}
	}
	return Server{}, errors.Errorf("no server %q configured", name)
}

// Allocator returns an address allocator for the configured pool.
func (c *Config) Allocator() (*ipam.Allocator, error) {
	pool, err := netip.ParsePrefix(c.IPAM.Pool)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ipam pool")
	}
	return ipam.New(pool, c.IPAM.SubnetBits)
}

// Session returns the synchronizer configuration.
func (c *Config) Session() session.Config {
	config := session.DefaultConfig()
	config.PositionRate = rate.Limit(c.Position.Rate)
	if c.Position.Burst > 0 {
		config.PositionBurst = c.Position.Burst
	}
	if len(c.Wlan) > 0 {
		config.Wlan = c.Wlan
	}
	return config
}
