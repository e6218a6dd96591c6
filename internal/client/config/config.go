package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the BotHoster CLI.
type Config struct {
	APIBaseURL          string        `validate:"required,http_url"`
	IdentityEndpoint    string        `validate:"required,http_url"`
	IdentityAPIKey      string        `validate:"required"`
	TelegramAPIURL      string        `validate:"required,http_url"`
	VerifyTokens        bool
	DatabasePath        string        `validate:"required"`
	OnlineCheckInterval time.Duration `validate:"gt=0"`
	RequestTimeout      time.Duration `validate:"gt=0"`
	LogLevel            string        `validate:"oneof=debug info warn warning error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.IdentityEndpoint = "https://identitytoolkit.googleapis.com/v1"
	c.IdentityAPIKey = ""
	c.TelegramAPIURL = "https://api.telegram.org"
	c.VerifyTokens = false
	c.DatabasePath = "bothoster.db"
	c.OnlineCheckInterval = 10 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid config")

// sources names where each field can be set, for validation messages.
var sources = map[string]string{
	"APIBaseURL":          "-a or BOTHOSTER_API_BASE_URL",
	"IdentityEndpoint":    "-e or BOTHOSTER_IDENTITY_ENDPOINT",
	"IdentityAPIKey":      "-k or BOTHOSTER_IDENTITY_API_KEY",
	"TelegramAPIURL":      "BOTHOSTER_TELEGRAM_API_URL",
	"DatabasePath":        "-d or BOTHOSTER_DATABASE_PATH",
	"OnlineCheckInterval": "-i or BOTHOSTER_ONLINE_CHECK_INTERVAL",
	"RequestTimeout":      "BOTHOSTER_REQUEST_TIMEOUT",
	"LogLevel":            "-l or BOTHOSTER_LOG_LEVEL",
}

// Validate checks that the merged configuration is usable. Each failing
// field is reported on its own line with the flag or variable that sets it.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(msgs, "\n  "))
}

func describe(fe validator.FieldError) string {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fe.Field() + " is required"
	case "http_url":
		msg = fmt.Sprintf("%s must be an http(s) URL, got %q", fe.Field(), fe.Value())
	case "gt":
		msg = fe.Field() + " must be positive"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of %s, got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		msg = fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag())
	}
	if src, ok := sources[fe.Field()]; ok {
		msg += " (set " + src + ")"
	}
	return msg
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
