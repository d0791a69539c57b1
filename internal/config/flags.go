package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// flagParser turns command-line arguments into a partial [StructuredConfig].
type flagParser func(args []string) (*StructuredConfig, error)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseClientFlags parses the client flags.
//
// Flags:
//
//	-a sessions backend base URL
//	-sessions-path list-sessions path
//	-messages-path send-message path
//	-push-address push channel WebSocket URL
//	-request-timeout request timeout (e.g., "30s")
//	-d SQLite database path
//	-sync-interval background sync interval (e.g., "5m")
//	-sync-retries retries of a retryable fetch failure
//	-reply-mode simulated | http | push
//	-reply-delay simulated reply delay (e.g., "1s")
//	-c/-config JSON or YAML config file path
func ParseClientFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg            StructuredConfig
		configFilePath string
	)

	fs := flag.NewFlagSet("twintalk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", "", "Sessions backend base URL")
	fs.StringVar(&cfg.Adapter.SessionsPath, "sessions-path", "", "List sessions path")
	fs.StringVar(&cfg.Adapter.MessagesPath, "messages-path", "", "Send message path")
	fs.StringVar(&cfg.Adapter.PushAddress, "push-address", "", "Push channel WebSocket URL")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "SQLite database path")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.IntVar(&cfg.Workers.SyncRetries, "sync-retries", 0, "Retries of a retryable fetch failure")
	fs.StringVar(&cfg.App.ReplyMode, "reply-mode", "", "Reply mode: simulated, http or push")
	fs.DurationVar(&cfg.App.ReplyDelay, "reply-delay", 0, "Simulated reply delay (e.g., 1s)")
	fs.StringVar(&configFilePath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configFilePath, "config", "", "JSON or YAML config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.ConfigFilePath = configFilePath
	return &cfg, nil
}

// ParseServerFlags parses the mock server flags.
//
// Flags:
//
//	-a listen address in format [host]:[port]
//	-fixture sessions fixture JSON path
//	-reply-delay delay before the AI answer (e.g., "1s")
//	-c/-config JSON or YAML config file path
func ParseServerFlags(args []string) (*StructuredConfig, error) {
	var (
		address        NetAddress
		fixturePath    string
		replyDelay     time.Duration
		configFilePath string
	)

	fs := flag.NewFlagSet("twintalk-mockserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&address, "a", "Net address host:port")
	fs.StringVar(&fixturePath, "fixture", "", "Sessions fixture JSON path")
	fs.DurationVar(&replyDelay, "reply-delay", 0, "Delay before the AI answer (e.g., 1s)")
	fs.StringVar(&configFilePath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configFilePath, "config", "", "JSON or YAML config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Server: Server{
			HTTPAddress: address.String(),
			FixturePath: fixturePath,
			ReplyDelay:  replyDelay,
		},
		ConfigFilePath: configFilePath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
