// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for vicas.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display current configuration
//   path                Show configuration file path
//   init [--force]      Write the defaults to config.toml (--yaml: config.yaml)
//   get <key>           Print one value
//   set <key> <value>   Set a configuration value
//   keys                List every key
//
// Examples:
//   vicas config show --toml
//   vicas config set source.kind file
//   vicas config set source.file /srv/vi/vi.json
//   vicas config set ui.theme light
//   vicas config set server.cors_origins "https://app.example.com,*.example.org"

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/config"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	configSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")). // White
				MarginTop(1)

	configKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(20)

	configValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")) // Green

	configPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// LoadConfig loads the configuration. A config file that fails to parse
// is reported on stderr and the defaults are used; an invalid one is an
// error.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s %s (using defaults)\n", WarningStyle.Render("[AVISO]"), err)
	}
	return cfg, nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() string {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return ""
	}
	return path
}

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	p := NewArgParser(args.Raw, "force", "toml", "yaml")

	switch p.Subcommand() {
	case "", "show":
		return handleConfigShow(args, p.BoolFlag("toml"))
	case "path":
		return handleConfigPath(args)
	case "init":
		return handleConfigInit(args, p.BoolFlag("force"), p.BoolFlag("yaml"))
	case "get":
		return handleConfigGet(args, p.Positional(1))
	case "set":
		value := strings.Join(p.PositionalFrom(2), " ")
		return handleConfigSet(args, p.Positional(1), value)
	case "keys":
		return handleConfigKeys(args)
	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   p.Subcommand(),
			Reason:  "must be one of show, path, init, get, set, keys",
			Example: "vicas config get ui.theme",
		}
	}
}

func handleConfigShow(args Args, asTOML bool) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config show", map[string]interface{}{
			"path":   ConfigPath(),
			"config": cfg,
		}).Print()
	}
	if asTOML {
		return toml.NewEncoder(stdout).Encode(cfg)
	}

	fmt.Fprintln(stdout, TitleStyle.Render("vicas configuration"))
	fmt.Fprintln(stdout, configPathStyle.Render(ConfigPath()))

	section := ""
	for _, key := range config.Keys() {
		head, name, ok := strings.Cut(key, ".")
		if !ok {
			head, name = "", key
		}
		if head != section {
			section = head
			fmt.Fprintln(stdout, configSectionStyle.Render("["+section+"]"))
		}
		v, _ := cfg.Get(key)
		fmt.Fprintf(stdout, "  %s%s\n", configKeyStyle.Render(name+":"), configValueStyle.Render(formatConfigValue(v)))
	}
	return nil
}

func formatConfigValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return `""`
		}
		return val
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

func handleConfigPath(args Args) error {
	path := ConfigPath()
	_, err := os.Stat(path)
	exists := err == nil

	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{
			"path":   path,
			"exists": exists,
		}).Print()
	}
	fmt.Fprintln(stdout, path)
	if !exists {
		fmt.Fprintln(stderr, DimStyle.Render("(arquivo ainda não existe; use `vicas config init`)"))
	}
	return nil
}

func handleConfigInit(args Args, force, asYAML bool) error {
	path := ConfigPath()
	save := config.SaveTOML
	if asYAML {
		path, _ = config.ConfigPathYAML()
		save = config.SaveYAML
	}
	if path == "" {
		return NewCommandError("config", "init", "no config directory", nil)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return &ValidationError{
			Field:   "config file",
			Value:   path,
			Reason:  "already exists",
			Example: "vicas config init --force",
		}
	}
	if err := config.EnsureConfigDir(); err != nil {
		return NewCommandError("config", "init", "create directory", err)
	}
	if err := save(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "write", err)
	}

	if args.JSON {
		return NewJSONResponse("config init", map[string]interface{}{"path": path}).Print()
	}
	fmt.Fprintf(stdout, "%s %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

func handleConfigGet(args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "vicas config get ui.theme")
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	v, err := cfg.Get(key)
	if err != nil {
		return &ValidationError{Field: "key", Value: key, Reason: err.Error()}
	}

	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": v}).Print()
	}
	fmt.Fprintln(stdout, formatConfigValue(v))
	return nil
}

func handleConfigSet(args Args, key, value string) error {
	if key == "" {
		return ErrMissingArgument("key", "vicas config set ui.theme dark")
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	// Set and validate on a copy so a bad value never reaches the file.
	updated := cfg.Clone()
	if err := updated.Set(key, value); err != nil {
		return &ValidationError{Field: "key", Value: key, Reason: err.Error()}
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := config.EnsureConfigDir(); err != nil {
		return NewCommandError("config", "set", "create directory", err)
	}
	if err := config.Save(updated); err != nil {
		return NewCommandError("config", "set", "write", err)
	}

	v, _ := updated.Get(key)
	if args.JSON {
		return NewJSONResponse("config set", map[string]interface{}{"key": key, "value": v}).Print()
	}
	fmt.Fprintf(stdout, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, formatConfigValue(v))
	return nil
}

func handleConfigKeys(args Args) error {
	keys := config.Keys()
	if args.JSON {
		return NewJSONResponse("config keys", keys).Print()
	}
	for _, k := range keys {
		fmt.Fprintln(stdout, k)
	}
	return nil
}
