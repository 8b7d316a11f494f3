// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ragchat configuration.
type Config struct {
	API APIConfig `toml:"api"`
	UI  UIConfig  `toml:"ui"`
	Log LogConfig `toml:"log"`
}

// APIConfig describes the remote answer service.
type APIConfig struct {
	// BaseURL is the origin of the answer service, e.g. http://localhost:8080
	BaseURL string `toml:"base_url"`
	// AskPath is the path of the ask endpoint
	AskPath string `toml:"ask_path"`
	// TimeoutSecs bounds a single request. 0 waits indefinitely.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "dark", "light" or "notty"
	Theme string `toml:"theme"`
	// Greeting is the first bot message of every conversation; empty disables it
	Greeting string `toml:"greeting"`
	// WordWrap is the markdown wrap width; 0 follows the terminal width
	WordWrap int `toml:"word_wrap"`
	// ShowTimestamps prints message times next to the role label
	ShowTimestamps bool `toml:"show_timestamps"`
	// TranscriptDir is where exported transcripts go; empty means ~/.ragchat/transcripts
	TranscriptDir string `toml:"transcript_dir"`
}

// LogConfig controls the zerolog file logger.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error
	Level string `toml:"level"`
	// File is the log file path; empty means ~/.ragchat/ragchat.log
	File string `toml:"file"`
}

// DefaultGreeting opens every conversation unless overridden.
const DefaultGreeting = "Hello! I am your Secure RAG Assistant. Ask me about CVEs or Cyber Threats."

// Timeout returns the request timeout as a duration. Zero means none.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// AskURL joins BaseURL and AskPath.
func (a APIConfig) AskURL() string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(a.AskPath, "/")
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8080",
			AskPath:     "/api/rag/ask",
			TimeoutSecs: 0,
		},
		UI: UIConfig{
			Theme:          "dark",
			Greeting:       DefaultGreeting,
			WordWrap:       0,
			ShowTimestamps: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ragchat configuration directory.
// RAGCHAT_HOME overrides the default ~/.ragchat.
func ConfigDir() (string, error) {
	if dir := os.Getenv("RAGCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".ragchat"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the config directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// LogPath returns the effective log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ragchat.log"), nil
}

// TranscriptPath returns the effective transcript directory.
func (c *Config) TranscriptPath() (string, error) {
	if c.UI.TranscriptDir != "" {
		return c.UI.TranscriptDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "transcripts"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.ragchat/config.toml if it exists, then applies .env and
// RAGCHAT_* overrides, fills defaults and validates.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load with an explicit file. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}

	// .env is optional; a missing file is the common case.
	_ = godotenv.Load()
	cfg.ApplyEnvOverrides()

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file on top of cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// fillDefaults restores required values that a config file blanked out.
func (c *Config) fillDefaults() {
	defaults := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.AskPath == "" {
		c.API.AskPath = defaults.API.AskPath
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to path as TOML with 0600 permissions.
func Save(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# ragchat configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrInvalid) match.
func (e ValidateErrors) Is(target error) bool {
	return target == ErrInvalid
}

var validThemes = map[string]bool{"dark": true, "light": true, "notty": true}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

// Validate checks the configuration and returns ValidateErrors if anything is off.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.API.BaseURL),
		})
	}
	if !strings.HasPrefix(c.API.AskPath, "/") {
		errs = append(errs, ValidationError{
			Field:   "api.ask_path",
			Message: fmt.Sprintf("invalid path '%s', must start with /", c.API.AskPath),
		})
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: "must not be negative",
		})
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, notty", c.UI.Theme),
		})
	}
	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.word_wrap",
			Message: "must not be negative",
		})
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
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

// ApplyEnvOverrides applies RAGCHAT_* environment variables.
//
// Supported environment variables:
//   - RAGCHAT_API_URL: overrides api.base_url
//   - RAGCHAT_ASK_PATH: overrides api.ask_path
//   - RAGCHAT_TIMEOUT: overrides api.timeout_secs
//   - RAGCHAT_THEME: overrides ui.theme
//   - RAGCHAT_LOG_LEVEL: overrides log.level
//   - RAGCHAT_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RAGCHAT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("RAGCHAT_ASK_PATH"); v != "" {
		c.API.AskPath = v
	}
	if v := os.Getenv("RAGCHAT_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("RAGCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("RAGCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RAGCHAT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// String renders the config as TOML for `ragchat config show`.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return b.String()
}
