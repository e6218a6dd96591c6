package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/bothoster/internal/flagx"
	"github.com/dmitrijs2005/bothoster/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value, so only keys present in the
// file override earlier values.
type JSONConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	IdentityEndpoint    *string         `json:"identity_endpoint"`
	IdentityAPIKey      *string         `json:"identity_api_key"`
	TelegramAPIURL      *string         `json:"telegram_api_url"`
	VerifyTokens        *bool           `json:"verify_tokens"`
	DatabasePath        *string         `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c/-config. Comments and
// trailing commas are allowed.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.IdentityEndpoint, jc.IdentityEndpoint)
	setString(&cfg.IdentityAPIKey, jc.IdentityAPIKey)
	setString(&cfg.TelegramAPIURL, jc.TelegramAPIURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.VerifyTokens != nil {
		cfg.VerifyTokens = *jc.VerifyTokens
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
