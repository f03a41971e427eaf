package config

import (
	"errors"

	"github.com/andrew-solarstorm/go-packages/common"
)

type RoutingConfig struct {
	// QuoteTimeoutMs bounds each venue's quote call during fan-out.
	// Default: 3000
	QuoteTimeoutMs int

	// DBPath is the path to the BoltDB file for engine state persistence.
	// Default: "./data/dex-router.db"
	DBPath string

	// PersistenceEnabled controls whether scoring weights and performance
	// counters are persisted to disk.
	// Default: true
	PersistenceEnabled bool
}

func (c *RoutingConfig) Key() string {
	return ROUTING_CONFIG_KEY
}

func (c *RoutingConfig) Load() error {
	c.QuoteTimeoutMs = common.GetEnvOrDefaultInt("ROUTING_QUOTE_TIMEOUT_MS", 3000)
	c.DBPath = common.GetEnvOrDefault("ROUTING_DB_PATH", "./data/dex-router.db")
	c.PersistenceEnabled = common.GetEnvOrDefault("ROUTING_PERSISTENCE_ENABLED", "true") == "true"
	return c.Validate()
}

func (c *RoutingConfig) Validate() error {
	if c.QuoteTimeoutMs <= 0 {
		return errors.New("ROUTING_QUOTE_TIMEOUT_MS must be positive")
	}
	return nil
}
