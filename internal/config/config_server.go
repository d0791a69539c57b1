package config

import (
	"fmt"
	"time"
)

// ServerConfig is the configuration of the development mock server.
type ServerConfig struct {
	// HTTPAddress is the listen address in "host:port" format.
	HTTPAddress string
	// FixturePath optionally overrides the embedded sessions fixture.
	FixturePath string
	// ReplyDelay is the pause before the canned AI answer.
	ReplyDelay time.Duration
}

// GetServerConfig builds and validates the mock server config view.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(ParseServerFlags, args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress: cfg.Server.HTTPAddress,
		FixturePath: cfg.Server.FixturePath,
		ReplyDelay:  cfg.Server.ReplyDelay,
	}

	return serverCfg, serverCfg.validate()
}
