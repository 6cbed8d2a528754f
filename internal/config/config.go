// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/vicas-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete vicas configuration.
type Config struct {
	// Version of the config file layout
	Version string `toml:"version" json:"version" yaml:"version"`

	// Where the TUI and lookup commands read reference data from
	Source SourceConfig `toml:"source" json:"source" yaml:"source"`

	// Reference data server settings (vicas serve)
	Server ServerConfig `toml:"server" json:"server" yaml:"server"`

	// Terminal UI settings
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`

	// Log destination and verbosity
	Log LogConfig `toml:"log" json:"log" yaml:"log"`
}

// SourceConfig selects the reference data source.
type SourceConfig struct {
	// Kind is one of: http, file, sqlite
	Kind string `toml:"kind" json:"kind" yaml:"kind"`

	// Endpoint is the base URL of the data service (http kind)
	Endpoint string `toml:"endpoint" json:"endpoint" yaml:"endpoint"`

	// Path of the document resource on the service
	Path string `toml:"path" json:"path" yaml:"path"`

	// File is a local JSON document (file kind)
	File string `toml:"file" json:"file" yaml:"file"`

	// SQLite is a local snapshot database (sqlite kind)
	SQLite string `toml:"sqlite" json:"sqlite" yaml:"sqlite"`

	// TimeoutSeconds per request
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`

	// MaxRetries for connection failures
	MaxRetries int `toml:"max_retries" json:"max_retries" yaml:"max_retries"`
}

// ServerConfig configures `vicas serve`.
type ServerConfig struct {
	Addr string `toml:"addr" json:"addr" yaml:"addr"`

	// File is the JSON document served at /vi/cas
	File string `toml:"file" json:"file" yaml:"file"`

	// SQLite snapshot served instead of File when set
	SQLite string `toml:"sqlite" json:"sqlite" yaml:"sqlite"`

	// Watch reloads File when it changes on disk
	Watch bool `toml:"watch" json:"watch" yaml:"watch"`

	// CORSOrigins allowed to call the API; empty allows none, "*" allows all
	CORSOrigins []string `toml:"cors_origins" json:"cors_origins" yaml:"cors_origins"`

	// RateLimit is the per-client request budget per minute (0 disables)
	RateLimit int `toml:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// Theme is one of: auto, dark, light
	Theme string `toml:"theme" json:"theme" yaml:"theme"`

	// HighlightMS is how long a row stays highlighted after a chip jump
	HighlightMS int `toml:"highlight_ms" json:"highlight_ms" yaml:"highlight_ms"`

	// ToastSeconds is how long the "Copiado!" notification stays up
	ToastSeconds int `toml:"toast_seconds" json:"toast_seconds" yaml:"toast_seconds"`

	// Mouse enables click support for chips and column headers
	Mouse bool `toml:"mouse" json:"mouse" yaml:"mouse"`

	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen" json:"alt_screen" yaml:"alt_screen"`
}

// LogConfig controls logging. The TUI never logs to the terminal; when File
// is empty its log output is discarded.
type LogConfig struct {
	File    string `toml:"file" json:"file" yaml:"file"`
	Verbose bool   `toml:"verbose" json:"verbose" yaml:"verbose"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// CurrentVersion is the config layout version written by SaveTOML.
const CurrentVersion = "1"

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Source: SourceConfig{
			Kind:           "http",
			Endpoint:       "http://127.0.0.1:8787",
			Path:           "/vi/cas",
			TimeoutSeconds: 15,
			MaxRetries:     2,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8787",
			File:        "vi.json",
			Watch:       true,
			CORSOrigins: []string{},
			RateLimit:   120,
		},
		UI: UIConfig{
			Theme:        "auto",
			HighlightMS:  2500,
			ToastSeconds: 4,
			Mouse:        true,
			AltScreen:    true,
		},
		Log: LogConfig{},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the vicas configuration directory. VICAS_HOME overrides
// the default ~/.vicas.
func ConfigDir() (string, error) {
	if dir := os.Getenv("VICAS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".vicas"), nil
}

func configPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) { return configPath("config.toml") }

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) { return configPath("config.yaml") }

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) { return configPath("config.json") }

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

type loader func(cfg *Config, path string) error

// Load loads configuration from the first config file found, trying TOML,
// then YAML, then JSON. Without any file the defaults are used. Environment
// overrides are applied last in every case.
func Load() (*Config, error) {
	candidates := []struct {
		path func() (string, error)
		load loader
		kind string
	}{
		{ConfigPathTOML, LoadTOML, "TOML"},
		{ConfigPathYAML, LoadYAML, "YAML"},
		{ConfigPathJSON, LoadJSON, "JSON"},
	}

	var loadErr error
	for _, c := range candidates {
		path, err := c.path()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}

		cfg := Default()
		if err := c.load(cfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load %s config: %w", c.kind, err)
			continue
		}
		return finish(cfg)
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	// Defaults are returned together with any load error for information.
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file. The format follows
// the extension; anything other than .json, .yaml or .yml is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# vicas configuration file\n")
	b.WriteString("# Generated by vicas - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveYAML writes the configuration as YAML.
func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Source
	switch strings.ToLower(c.Source.Kind) {
	case "http":
		u, err := url.Parse(c.Source.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "source.endpoint",
				Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Source.Endpoint),
			})
		}
	case "file":
		if c.Source.File == "" {
			errs = append(errs, ValidationError{Field: "source.file", Message: "required when source.kind is 'file'"})
		}
	case "sqlite":
		if c.Source.SQLite == "" {
			errs = append(errs, ValidationError{Field: "source.sqlite", Message: "required when source.kind is 'sqlite'"})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "source.kind",
			Message: fmt.Sprintf("invalid kind '%s', must be one of: http, file, sqlite", c.Source.Kind),
		})
	}
	if c.Source.TimeoutSeconds < 1 || c.Source.TimeoutSeconds > 300 {
		errs = append(errs, ValidationError{
			Field:   "source.timeout_seconds",
			Message: fmt.Sprintf("must be between 1 and 300, got %d", c.Source.TimeoutSeconds),
		})
	}
	if c.Source.MaxRetries < 0 || c.Source.MaxRetries > 10 {
		errs = append(errs, ValidationError{
			Field:   "source.max_retries",
			Message: fmt.Sprintf("must be between 0 and 10, got %d", c.Source.MaxRetries),
		})
	}

	// Server
	if c.Server.Addr == "" || !strings.Contains(c.Server.Addr, ":") {
		errs = append(errs, ValidationError{
			Field:   "server.addr",
			Message: fmt.Sprintf("invalid address '%s', expected host:port", c.Server.Addr),
		})
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit", Message: "must not be negative"})
	}

	// UI
	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.HighlightMS < 100 || c.UI.HighlightMS > 60000 {
		errs = append(errs, ValidationError{
			Field:   "ui.highlight_ms",
			Message: fmt.Sprintf("must be between 100 and 60000, got %d", c.UI.HighlightMS),
		})
	}
	if c.UI.ToastSeconds < 1 || c.UI.ToastSeconds > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.toast_seconds",
			Message: fmt.Sprintf("must be between 1 and 60, got %d", c.UI.ToastSeconds),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults. Booleans are left alone.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Source.Kind == "" {
		c.Source.Kind = d.Source.Kind
	}
	c.Source.Kind = strings.ToLower(c.Source.Kind)
	if c.Source.Endpoint == "" {
		c.Source.Endpoint = d.Source.Endpoint
	}
	if c.Source.Path == "" {
		c.Source.Path = d.Source.Path
	}
	if c.Source.TimeoutSeconds == 0 {
		c.Source.TimeoutSeconds = d.Source.TimeoutSeconds
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.File == "" && c.Server.SQLite == "" {
		c.Server.File = d.Server.File
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.HighlightMS == 0 {
		c.UI.HighlightMS = d.UI.HighlightMS
	}
	if c.UI.ToastSeconds == 0 {
		c.UI.ToastSeconds = d.UI.ToastSeconds
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - VICAS_ENDPOINT: overrides source.endpoint and selects the http kind
//   - VICAS_SOURCE: overrides source.kind
//   - VICAS_FILE: overrides source.file and server.file
//   - VICAS_ADDR: overrides server.addr
//   - VICAS_THEME: overrides ui.theme
//   - VICAS_LOG_FILE: overrides log.file
//   - VICAS_VERBOSE: set to "1" or "true" to enable verbose logging
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("VICAS_ENDPOINT"); endpoint != "" {
		c.Source.Endpoint = endpoint
		c.Source.Kind = "http"
	}
	if kind := os.Getenv("VICAS_SOURCE"); kind != "" {
		c.Source.Kind = kind
	}
	if file := os.Getenv("VICAS_FILE"); file != "" {
		c.Source.File = file
		c.Server.File = file
	}
	if addr := os.Getenv("VICAS_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if theme := os.Getenv("VICAS_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if logFile := os.Getenv("VICAS_LOG_FILE"); logFile != "" {
		c.Log.File = logFile
	}
	if verbose := os.Getenv("VICAS_VERBOSE"); verbose != "" {
		c.Log.Verbose = verbose == "1" || strings.ToLower(verbose) == "true"
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g. "ui.highlight_ms").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookupField(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g. "source.kind").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookupField(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookupField walks the struct tree matching each dotted part against the
// toml tag of the field.
func (c *Config) lookupField(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == name || strings.EqualFold(t.Field(i).Name, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(strVal, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns every configuration key in dot notation.
func Keys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if prefix != "" {
				name = prefix + "." + name
			}
			if f.Type.Kind() == reflect.Struct {
				walk(name, f.Type)
				continue
			}
			keys = append(keys, name)
		}
	}
	walk("", reflect.TypeOf(Config{}))
	return keys
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
