// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for ragchat.
//
// # Key Types
//
//   - Config: main configuration structure
//   - APIConfig: where the answer service lives and how long to wait for it
//   - UIConfig: theme, greeting and rendering options
//   - LogConfig: log level and log file location
//   - Watcher: fsnotify-based live reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (RAGCHAT_*), including values from a .env file
//   - ~/.ragchat/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	url := cfg.API.AskURL()
package config
