package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const envPrefix = "BOTHOSTER"

// parseEnv overlays cfg with BOTHOSTER_* environment variables. Empty
// variables are treated as unset.
func parseEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	keys := []string{
		"api_base_url",
		"identity_endpoint",
		"identity_api_key",
		"telegram_api_url",
		"verify_tokens",
		"database_path",
		"online_check_interval",
		"request_timeout",
		"log_level",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	stringKeys := map[string]*string{
		"api_base_url":      &cfg.APIBaseURL,
		"identity_endpoint": &cfg.IdentityEndpoint,
		"identity_api_key":  &cfg.IdentityAPIKey,
		"telegram_api_url":  &cfg.TelegramAPIURL,
		"database_path":     &cfg.DatabasePath,
		"log_level":         &cfg.LogLevel,
	}
	for k, dst := range stringKeys {
		if v.IsSet(k) {
			*dst = v.GetString(k)
		}
	}

	if v.IsSet("verify_tokens") {
		cfg.VerifyTokens = v.GetBool("verify_tokens")
	}
	if v.IsSet("online_check_interval") {
		cfg.OnlineCheckInterval = v.GetDuration("online_check_interval")
	}
	if v.IsSet("request_timeout") {
		cfg.RequestTimeout = v.GetDuration("request_timeout")
	}
	return nil
}
