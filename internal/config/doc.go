// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for vicas.
//
// Supports TOML, YAML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - SourceConfig: Where reference data is read from (http, file, sqlite)
//   - ServerConfig: The `vicas serve` reference data server
//   - UIConfig: Terminal UI behavior (theme, highlight duration, mouse)
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (VICAS_*)
//   - ~/.vicas/config.toml
//   - ~/.vicas/config.yaml
//   - ~/.vicas/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo, err := repository.New(cfg.Source)
package config
