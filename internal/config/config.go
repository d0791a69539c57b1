// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Reply modes select how the AI answer to a user message is delivered.
const (
	ReplyModeSimulated = "simulated"
	ReplyModeHTTP      = "http"
	ReplyModePush      = "push"
)

// DefaultReplyText is the canned answer of the simulated reply source.
const DefaultReplyText = "This is a simulated AI response. In a real app, this would come from the backend."

// StructuredConfig is the top-level configuration container. It is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds reply delivery settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote endpoints and transport timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local SQLite cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background sync settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds settings of the development mock server.
	Server Server `envPrefix:"SERVER_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. Populated via the CONFIG environment variable or the -c / -config
	// flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// ReplyMode is one of "simulated", "http" or "push".
	// Env: APP_REPLY_MODE
	ReplyMode string `env:"REPLY_MODE"`

	// ReplyDelay is how long the simulated reply source waits before
	// answering.
	// Env: APP_REPLY_DELAY
	ReplyDelay time.Duration `env:"REPLY_DELAY"`

	// ReplyText is the canned text of the simulated reply.
	// Env: APP_REPLY_TEXT
	ReplyText string `env:"REPLY_TEXT"`

	// ReplyTimeout bounds how long the push reply source waits for an AI
	// frame.
	// Env: APP_REPLY_TIMEOUT
	ReplyTimeout time.Duration `env:"REPLY_TIMEOUT"`
}

// Adapter holds outbound transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the sessions backend
	// (e.g. "https://run.mocky.io/v3" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// SessionsPath is appended to HTTPAddress for the list-sessions request.
	// Env: ADAPTER_SESSIONS_PATH
	SessionsPath string `env:"SESSIONS_PATH"`

	// MessagesPath is appended to HTTPAddress for the send-message request.
	// Env: ADAPTER_MESSAGES_PATH
	MessagesPath string `env:"MESSAGES_PATH"`

	// PushAddress is the WebSocket URL of the push channel.
	// Env: ADAPTER_PUSH_ADDRESS
	PushAddress string `env:"PUSH_ADDRESS"`

	// RequestTimeout is the deadline of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ReconnectDelay is the pause before the push channel reconnects.
	// Env: ADAPTER_RECONNECT_DELAY
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"`
}

// Storage groups local persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite file path (e.g. "twintalk.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// SyncRetries is how many times a retryable fetch failure is retried.
	// Env: WORKERS_SYNC_RETRIES
	SyncRetries int `env:"SYNC_RETRIES"`

	// SyncRetryBackoff is the base delay of the exponential retry backoff.
	// Env: WORKERS_SYNC_RETRY_BACKOFF
	SyncRetryBackoff time.Duration `env:"SYNC_RETRY_BACKOFF"`
}

// Server holds settings of the development mock server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// FixturePath optionally points at a JSON file with the initial sessions.
	// The embedded fixture is used when empty.
	// Env: SERVER_FIXTURE_PATH
	FixturePath string `env:"FIXTURE_PATH"`

	// ReplyDelay is how long the mock server waits before answering a user
	// message.
	// Env: SERVER_REPLY_DELAY
	ReplyDelay time.Duration `env:"REPLY_DELAY"`
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			ReplyMode:    ReplyModeSimulated,
			ReplyDelay:   time.Second,
			ReplyText:    DefaultReplyText,
			ReplyTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			SessionsPath:   "/sessions",
			MessagesPath:   "/messages",
			PushAddress:    "ws://localhost:8080/ws",
			RequestTimeout: 30 * time.Second,
			ReconnectDelay: 2 * time.Second,
		},
		Storage: Storage{
			DB: DB{DSN: "twintalk.db"},
		},
		Workers: Workers{
			SyncInterval:     5 * time.Minute,
			SyncRetries:      2,
			SyncRetryBackoff: 500 * time.Millisecond,
		},
		Server: Server{
			HTTPAddress: "localhost:8080",
			ReplyDelay:  time.Second,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources.
// parse selects the flag set (client or server) applied to args.
func GetStructuredConfig(parse flagParser, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(parse, args).
		withFile().
		build()
}
