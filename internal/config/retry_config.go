package config

import (
	"time"
)

// ConnectRetryConfig holds the startup backoff for dependencies the server cannot run without.
type ConnectRetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	Multiplier      float64
}

// GetConnectRetryConfig returns the DB connect backoff. Test runs use short
// intervals so a missing database fails fast.
func (c Config) GetConnectRetryConfig() ConnectRetryConfig {
	if c.IsTest() {
		return ConnectRetryConfig{
			InitialInterval: 50 * time.Millisecond,
			MaxInterval:     200 * time.Millisecond,
			MaxElapsed:      time.Second,
			Multiplier:      2.0,
		}
	}
	return ConnectRetryConfig{
		InitialInterval: c.DBConnectInitialInterval,
		MaxInterval:     c.DBConnectMaxInterval,
		MaxElapsed:      c.DBConnectMaxElapsed,
		Multiplier:      1.5,
	}
}
