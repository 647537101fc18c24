package session

import (
	"golang.org/x/time/rate"
)

// Config tunes a Synchronizer.
type Config struct {
	// PositionRate is the number of position updates per second pushed to
	// the backend while a node is dragged in RUNTIME. Updates above the
	// rate are kept locally only.
	PositionRate  rate.Limit
	PositionBurst int

	// Wlan is the configuration given to WLAN nodes when they are added.
	Wlan map[string]string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		PositionRate:  10,
		PositionBurst: 1,
		Wlan:          DefaultWlanConfig(),
	}
}

// DefaultWlanConfig returns the basic range model configuration of a new
// WLAN node.
func DefaultWlanConfig() map[string]string {
	return map[string]string{
		"basic_range": "275",
		"bandwidth":   "54000000",
		"jitter":      "0",
		"delay":       "20000",
		"error":       "0",
	}
}

func copyConfig(config map[string]string) map[string]string {
	if config == nil {
		return nil
	}
	c := make(map[string]string, len(config))
	for k, v := range config {
		c[k] = v
	}
	return c
}
