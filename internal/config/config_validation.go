// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.SessionsPath == "" || cfg.Adapter.MessagesPath == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.SyncRetries < 0 || cfg.Workers.SyncRetryBackoff < 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.App.ReplyMode {
	case ReplyModeSimulated:
		if cfg.App.ReplyDelay < 0 || cfg.App.ReplyText == "" {
			return ErrInvalidAppConfigs
		}
	case ReplyModeHTTP:
	case ReplyModePush:
		if cfg.Adapter.PushAddress == "" {
			return ErrInvalidAdapterConfigs
		}
		if cfg.App.ReplyTimeout <= 0 {
			return ErrInvalidAppConfigs
		}
	default:
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.ReplyDelay < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
