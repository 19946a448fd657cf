package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadAppliesPolicyDefaults(t *testing.T) {
	path := writeConfig(t, "[policy]\nmin_length = 10\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Policy.MinLength)
	assert.Equal(t, 128, cfg.Policy.MaxLength)
	assert.True(t, cfg.Policy.AllowSpaces)
	assert.True(t, cfg.Policy.AllowUnicode)
	assert.True(t, cfg.Policy.ForbidContextWords)
	assert.False(t, cfg.Policy.CheckPwnedPasswords)
}

func TestLoadFullPolicy(t *testing.T) {
	path := writeConfig(t, `
[policy]
min_length = 8
max_length = 64
require_upper = true
require_symbol = true
allow_spaces = false
allow_unicode = false
normalize_unicode_nfc = true
local_blocklist_path = "/tmp/blocklist.txt"
check_pwned_passwords = true
forbid_context_words = false

[pwned]
timeout = "5s"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Policy.MinLength)
	assert.Equal(t, 64, cfg.Policy.MaxLength)
	assert.True(t, cfg.Policy.RequireUpper)
	assert.True(t, cfg.Policy.RequireSymbol)
	assert.False(t, cfg.Policy.AllowSpaces)
	assert.False(t, cfg.Policy.AllowUnicode)
	assert.True(t, cfg.Policy.NormalizeUnicodeNFC)
	assert.Equal(t, "/tmp/blocklist.txt", cfg.Policy.LocalBlocklistPath)
	assert.True(t, cfg.Policy.CheckPwnedPasswords)
	assert.False(t, cfg.Policy.ForbidContextWords)
	assert.Equal(t, 5*time.Second, cfg.Pwned.Timeout)
}

func TestLoadIgnoresUnknownPolicyKeys(t *testing.T) {
	path := writeConfig(t, "[policy]\nmin_length = 9\nno_such_knob = true\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Policy.MinLength)
}

func TestLoadMissingPolicyTable(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9090\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "[policy]")
}

func TestLoadPolicyNotATable(t *testing.T) {
	path := writeConfig(t, "policy = \"oops\"\n")

	_, err := Load(path)

	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestDefaultMatchesModernPolicy(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 12, cfg.Policy.MinLength)
	assert.Equal(t, 128, cfg.Policy.MaxLength)
	assert.True(t, cfg.Policy.AllowSpaces)
	assert.Equal(t, 3*time.Second, cfg.Pwned.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestApplyEnvOverridesServer(t *testing.T) {
	t.Setenv("PASSGUARD_PORT", "9999")
	t.Setenv("PASSGUARD_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}
