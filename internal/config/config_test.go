// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RAGCHAT_HOME", dir)
	for _, k := range []string{
		"RAGCHAT_API_URL", "RAGCHAT_ASK_PATH", "RAGCHAT_TIMEOUT",
		"RAGCHAT_THEME", "RAGCHAT_LOG_LEVEL", "RAGCHAT_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8080/api/rag/ask", cfg.API.AskURL())
	assert.Zero(t, cfg.API.Timeout(), "no timeout by default")
	assert.Equal(t, DefaultGreeting, cfg.UI.Greeting)
	assert.NoError(t, cfg.Validate())
}

func TestAskURL_Slashes(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://h:1", "/api/rag/ask", "http://h:1/api/rag/ask"},
		{"http://h:1/", "/api/rag/ask", "http://h:1/api/rag/ask"},
		{"http://h:1/prefix", "ask", "http://h:1/prefix/ask"},
	}
	for _, tc := range tests {
		a := APIConfig{BaseURL: tc.base, AskPath: tc.path}
		assert.Equal(t, tc.want, a.AskURL())
	}
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
}

func TestLoadFromPath_TOML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
[api]
base_url = "https://rag.example.com"
timeout_secs = 30

[ui]
theme = "light"
greeting = ""
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://rag.example.com/api/rag/ask", cfg.API.AskURL())
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Empty(t, cfg.UI.Greeting, "an explicit empty greeting disables it")
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[api]\nbase_ulr = \"http://x\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_ulr")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[api]\nbase_url = \"ftp://nope\"\n[ui]\ntheme = \"neon\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("RAGCHAT_API_URL", "http://10.0.0.5:9000")
	t.Setenv("RAGCHAT_TIMEOUT", "12")
	t.Setenv("RAGCHAT_THEME", "notty")
	t.Setenv("RAGCHAT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
	assert.Equal(t, 12, cfg.API.TimeoutSecs)
	assert.Equal(t, "notty", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("RAGCHAT_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.API.TimeoutSecs)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "http://rag.internal:8080"
	cfg.UI.ShowTimestamps = true
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API, loaded.API)
	assert.True(t, loaded.UI.ShowTimestamps)
}

func TestPaths(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	logPath, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ragchat.log"), logPath)

	tp, err := cfg.TranscriptPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transcripts"), tp)

	cfg.Log.File = "/tmp/x.log"
	logPath, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", logPath)
}

// =============================================================================
// WATCHER
// =============================================================================

// Run with: go test -race ./internal/config/
func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"dark\"\n")

	got := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { got <- c })
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	select {
	case cfg := <-got:
		assert.Equal(t, "light", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	dir := isolate(t)
	w, err := NewWatcher(filepath.Join(dir, "config.toml"), nil)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
