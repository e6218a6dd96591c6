package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	"BOTHOSTER_API_BASE_URL",
	"BOTHOSTER_IDENTITY_ENDPOINT",
	"BOTHOSTER_IDENTITY_API_KEY",
	"BOTHOSTER_TELEGRAM_API_URL",
	"BOTHOSTER_VERIFY_TOKENS",
	"BOTHOSTER_DATABASE_PATH",
	"BOTHOSTER_ONLINE_CHECK_INTERVAL",
	"BOTHOSTER_REQUEST_TIMEOUT",
	"BOTHOSTER_LOG_LEVEL",
}

// clearEnv blanks every BOTHOSTER_ variable for the test; empty values
// count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		APIBaseURL:          "http://127.0.0.1:8080",
		IdentityEndpoint:    "https://identitytoolkit.googleapis.com/v1",
		TelegramAPIURL:      "https://api.telegram.org",
		DatabasePath:        "bothoster.db",
		OnlineCheckInterval: 10 * time.Second,
		RequestTimeout:      15 * time.Second,
		LogLevel:            "info",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DefaultsRequireAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := load(nil)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "IdentityAPIKey is required (set -k or BOTHOSTER_IDENTITY_API_KEY)")
	assert.NotContains(t, err.Error(), "Key: 'Config.")
}

func TestValidate_DescribesEachField(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()
	c.IdentityAPIKey = "key"
	c.APIBaseURL = "not a url"
	c.LogLevel = "verbose"
	c.OnlineCheckInterval = 0

	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	msg := err.Error()
	assert.Contains(t, msg, `APIBaseURL must be an http(s) URL, got "not a url" (set -a or BOTHOSTER_API_BASE_URL)`)
	assert.Contains(t, msg, `LogLevel must be one of debug info warn warning error, got "verbose"`)
	assert.Contains(t, msg, "OnlineCheckInterval must be positive")
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `{
		// file layer
		"api_base_url": "http://file:1",
		"identity_api_key": "file-key",
		"database_path": "file.db",
		"online_check_interval": "1500ms",
		"request_timeout": 2000000000,
		"log_level": "debug", // trailing comma below
	}`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := load([]string{"-c", path})
		require.NoError(t, err)

		assert.Equal(t, "http://file:1", cfg.APIBaseURL)
		assert.Equal(t, "file-key", cfg.IdentityAPIKey)
		assert.Equal(t, "file.db", cfg.DatabasePath)
		assert.Equal(t, 1500*time.Millisecond, cfg.OnlineCheckInterval)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL, "absent keys keep defaults")
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("BOTHOSTER_API_BASE_URL", "http://env:2")
		t.Setenv("BOTHOSTER_VERIFY_TOKENS", "true")
		t.Setenv("BOTHOSTER_REQUEST_TIMEOUT", "5s")

		cfg, err := load([]string{"-config", path})
		require.NoError(t, err)

		assert.Equal(t, "http://env:2", cfg.APIBaseURL)
		assert.True(t, cfg.VerifyTokens)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "file.db", cfg.DatabasePath)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("BOTHOSTER_API_BASE_URL", "http://env:2")

		cfg, err := load([]string{"-c", path, "-a", "http://flag:3", "-i", "7", "-d", "flag.db", "-l", "warn"})
		require.NoError(t, err)

		assert.Equal(t, "http://flag:3", cfg.APIBaseURL)
		assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "flag.db", cfg.DatabasePath)
		assert.Equal(t, "warn", cfg.LogLevel)
	})
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := load([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.ErrorContains(t, err, "read config")
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := load([]string{"-c", writeConfig(t, `{"api_base_url": }`)})
		require.ErrorContains(t, err, "parse config")
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := load([]string{"-c", writeConfig(t, `{"online_check_interval": "soon"}`)})
		require.Error(t, err)
	})

	t.Run("bad flag value", func(t *testing.T) {
		_, err := load([]string{"-k", "key", "-i", "abc"})
		require.ErrorContains(t, err, "parse flags")
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := load([]string{"-k", "key", "-a", "not a url"})
		require.ErrorContains(t, err, "invalid config")
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := load([]string{"-k", "key", "-l", "verbose"})
		require.ErrorContains(t, err, "invalid config")
	})

	t.Run("zero interval", func(t *testing.T) {
		_, err := load([]string{"-k", "key", "-i", "0"})
		require.ErrorContains(t, err, "invalid config")
	})
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.NoError(t, parseFlags(cfg, []string{"-c", "x.json", "-t", "-k", "key", "--unknown", "v"}))
	assert.True(t, cfg.VerifyTokens)
	assert.Equal(t, "key", cfg.IdentityAPIKey)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
}
