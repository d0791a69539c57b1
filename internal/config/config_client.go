package config

import (
	"fmt"
	"time"
)

// ClientApp holds reply delivery settings of the client.
type ClientApp struct {
	// ReplyMode selects the reply source: "simulated", "http" or "push".
	ReplyMode string
	// ReplyDelay is the wait of the simulated reply source.
	ReplyDelay time.Duration
	// ReplyText is the canned simulated answer.
	ReplyText string
	// ReplyTimeout bounds the wait for a pushed AI answer.
	ReplyTimeout time.Duration
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the sessions backend.
	HTTPAddress string
	// SessionsPath is the list-sessions path relative to HTTPAddress.
	SessionsPath string
	// MessagesPath is the send-message path relative to HTTPAddress.
	MessagesPath string
	// PushAddress is the WebSocket URL of the push channel.
	PushAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// ReconnectDelay is the pause before the push channel reconnects.
	ReconnectDelay time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
	// SyncRetries is the number of retries of a retryable fetch failure.
	SyncRetries int
	// SyncRetryBackoff is the base delay of the exponential retry backoff.
	SyncRetryBackoff time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration. args are the command-line arguments
// without the program name.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(ParseClientFlags, args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			ReplyMode:    cfg.App.ReplyMode,
			ReplyDelay:   cfg.App.ReplyDelay,
			ReplyText:    cfg.App.ReplyText,
			ReplyTimeout: cfg.App.ReplyTimeout,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			SessionsPath:   cfg.Adapter.SessionsPath,
			MessagesPath:   cfg.Adapter.MessagesPath,
			PushAddress:    cfg.Adapter.PushAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ReconnectDelay: cfg.Adapter.ReconnectDelay,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval:     cfg.Workers.SyncInterval,
			SyncRetries:      cfg.Workers.SyncRetries,
			SyncRetryBackoff: cfg.Workers.SyncRetryBackoff,
		},
	}
}
