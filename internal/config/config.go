// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// rigscribe.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.rigscribe/config.toml
//   - ~/.rigscribe/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/rigscribe/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigscribe configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`

	// Theme configuration for HTML export and preview
	Theme ThemeConfig `toml:"theme" json:"theme"`

	// Storage configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Index configuration
	Index IndexConfig `toml:"index" json:"index"`
}

// ExportConfig contains export behavior configuration.
type ExportConfig struct {
	// Format is the default export format: "html", "text", or "json"
	Format string `toml:"format" json:"format"`
	// OutputDir is where exported files are written (empty = current directory)
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// OpenAfterExport opens the exported file with the system handler
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
	// SummaryBudget is the character budget for compressed summaries
	// (0 = built-in default of 8000)
	SummaryBudget int `toml:"summary_budget" json:"summary_budget"`
}

// ThemeConfig contains colors for HTML export and terminal preview.
// Empty fields fall back to the built-in dark palette.
type ThemeConfig struct {
	// Name selects a built-in palette: "dark", "light", or "auto"
	// (auto detects the terminal background at preview time)
	Name string `toml:"name" json:"name"`
	// FontFamily is the CSS font stack for HTML export
	FontFamily string `toml:"font_family" json:"font_family"`
	// FontSize is the base CSS font size for HTML export
	FontSize string `toml:"font_size" json:"font_size"`
	// LinkColor overrides the palette link color (CSS color literal)
	LinkColor string `toml:"link_color" json:"link_color"`
	// CodeBackground overrides the palette code background
	CodeBackground string `toml:"code_background" json:"code_background"`
}

// StorageConfig contains transcript storage configuration.
type StorageConfig struct {
	// BaseDir is the transcript directory (empty = ~/.rigscribe/transcripts)
	BaseDir string `toml:"base_dir" json:"base_dir"`
	// MaxTranscripts caps how many transcripts are kept; oldest are pruned
	MaxTranscripts int `toml:"max_transcripts" json:"max_transcripts"`
	// AutoSave persists the active transcript after every appended entry
	AutoSave bool `toml:"auto_save" json:"auto_save"`
}

// IndexConfig contains search index configuration.
type IndexConfig struct {
	// Enabled controls whether the SQLite search index is maintained
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the index database path (empty = ~/.rigscribe/index.db)
	Path string `toml:"path" json:"path"`
	// WatchDebounceMs is the debounce window for filesystem events
	// before reindexing, in milliseconds
	WatchDebounceMs int `toml:"watch_debounce_ms" json:"watch_debounce_ms"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Export: ExportConfig{
			Format:          "html",
			OutputDir:       "",
			OpenAfterExport: false,
			SummaryBudget:   0, // built-in default
		},

		Theme: ThemeConfig{
			Name:       "dark",
			FontFamily: "",
			FontSize:   "",
		},

		Storage: StorageConfig{
			BaseDir:        "",
			MaxTranscripts: 100,
			AutoSave:       true,
		},

		Index: IndexConfig{
			Enabled:         true,
			Path:            "",
			WatchDebounceMs: 500,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rigscribe configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigscribe"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

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

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finalize(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finalize(cfg)
			}
		}
	}

	cfg, err = finalize(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. JSON when the path ends in .json, TOML otherwise.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finalize(cfg)
}

// finalize applies env overrides, defaults, and validation in order.
func finalize(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Export
	if cfg.Export.Format == "" {
		cfg.Export.Format = defaults.Export.Format
	}

	// Theme
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = defaults.Theme.Name
	}

	// Storage
	if cfg.Storage.MaxTranscripts == 0 {
		cfg.Storage.MaxTranscripts = defaults.Storage.MaxTranscripts
	}

	// Index
	if cfg.Index.WatchDebounceMs == 0 {
		cfg.Index.WatchDebounceMs = defaults.Index.WatchDebounceMs
	}
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

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# rigscribe configuration file")
	fmt.Fprintln(file, "# Generated by rigscribe - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return util.AtomicWriteFile(path, data, 0644)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidateErrors collects all validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for invalid values. Returns
// ValidateErrors listing every problem, or nil when the config is valid.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Export.Format {
	case "html", "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "export.format",
			Value:   c.Export.Format,
			Message: "must be one of: html, text, json",
		})
	}

	if c.Export.SummaryBudget < 0 {
		errs = append(errs, ValidationError{
			Field:   "export.summary_budget",
			Value:   c.Export.SummaryBudget,
			Message: "must be >= 0",
		})
	}

	switch c.Theme.Name {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "theme.name",
			Value:   c.Theme.Name,
			Message: "must be one of: dark, light, auto",
		})
	}

	if c.Storage.MaxTranscripts < 1 {
		errs = append(errs, ValidationError{
			Field:   "storage.max_transcripts",
			Value:   c.Storage.MaxTranscripts,
			Message: "must be >= 1",
		})
	}

	if c.Index.WatchDebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "index.watch_debounce_ms",
			Value:   c.Index.WatchDebounceMs,
			Message: "must be >= 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies RIGSCRIBE_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	// RIGSCRIBE_FORMAT
	if format := os.Getenv("RIGSCRIBE_FORMAT"); format != "" {
		c.Export.Format = format
	}

	// RIGSCRIBE_OUTPUT_DIR
	if dir := os.Getenv("RIGSCRIBE_OUTPUT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}

	// RIGSCRIBE_THEME
	if theme := os.Getenv("RIGSCRIBE_THEME"); theme != "" {
		c.Theme.Name = theme
	}

	// RIGSCRIBE_STORAGE_DIR
	if dir := os.Getenv("RIGSCRIBE_STORAGE_DIR"); dir != "" {
		c.Storage.BaseDir = dir
	}

	// RIGSCRIBE_SUMMARY_BUDGET
	if budget := os.Getenv("RIGSCRIBE_SUMMARY_BUDGET"); budget != "" {
		if n, err := strconv.Atoi(budget); err == nil && n >= 0 {
			c.Export.SummaryBudget = n
		}
	}

	// RIGSCRIBE_NO_INDEX
	if noIndex := os.Getenv("RIGSCRIBE_NO_INDEX"); noIndex != "" {
		c.Index.Enabled = !(noIndex == "1" || strings.ToLower(noIndex) == "true")
	}
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
		if globalConfig != nil {
			// Already injected via SetGlobal.
			return
		}
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
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
