package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors [StructuredConfig] for JSON and YAML config files.
type FileConfig struct {
	App struct {
		ReplyMode    string   `json:"reply_mode" yaml:"reply_mode"`
		ReplyDelay   Duration `json:"reply_delay" yaml:"reply_delay"`
		ReplyText    string   `json:"reply_text" yaml:"reply_text"`
		ReplyTimeout Duration `json:"reply_timeout" yaml:"reply_timeout"`
	} `json:"app" yaml:"app"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		SessionsPath   string   `json:"sessions_path" yaml:"sessions_path"`
		MessagesPath   string   `json:"messages_path" yaml:"messages_path"`
		PushAddress    string   `json:"push_address" yaml:"push_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		ReconnectDelay Duration `json:"reconnect_delay" yaml:"reconnect_delay"`
	} `json:"adapter" yaml:"adapter"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Workers struct {
		SyncInterval     Duration `json:"sync_interval" yaml:"sync_interval"`
		SyncRetries      int      `json:"sync_retries" yaml:"sync_retries"`
		SyncRetryBackoff Duration `json:"sync_retry_backoff" yaml:"sync_retry_backoff"`
	} `json:"workers" yaml:"workers"`

	Server struct {
		HTTPAddress string   `json:"http_address" yaml:"http_address"`
		FixturePath string   `json:"fixture_path" yaml:"fixture_path"`
		ReplyDelay  Duration `json:"reply_delay" yaml:"reply_delay"`
	} `json:"server" yaml:"server"`
}

// parseFile reads a config file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fileCfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f FileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			ReplyMode:    f.App.ReplyMode,
			ReplyDelay:   time.Duration(f.App.ReplyDelay),
			ReplyText:    f.App.ReplyText,
			ReplyTimeout: time.Duration(f.App.ReplyTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			SessionsPath:   f.Adapter.SessionsPath,
			MessagesPath:   f.Adapter.MessagesPath,
			PushAddress:    f.Adapter.PushAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
			ReconnectDelay: time.Duration(f.Adapter.ReconnectDelay),
		},
		Storage: Storage{
			DB: DB{DSN: f.Storage.DB.DSN},
		},
		Workers: Workers{
			SyncInterval:     time.Duration(f.Workers.SyncInterval),
			SyncRetries:      f.Workers.SyncRetries,
			SyncRetryBackoff: time.Duration(f.Workers.SyncRetryBackoff),
		},
		Server: Server{
			HTTPAddress: f.Server.HTTPAddress,
			FixturePath: f.Server.FixturePath,
			ReplyDelay:  time.Duration(f.Server.ReplyDelay),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s", or from a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if n, err := time.ParseDuration(node.Value); err == nil {
		*d = Duration(n)
		return nil
	}

	var nanos int64
	if err := node.Decode(&nanos); err != nil {
		return fmt.Errorf("invalid duration %q", node.Value)
	}
	*d = Duration(time.Duration(nanos))
	return nil
}
