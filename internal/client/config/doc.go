// Package config loads runtime configuration for the BotHoster CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config. Comments and trailing
//     commas are accepted.
//  3. Environment variables prefixed with BOTHOSTER_.
//  4. Command-line flags, which override everything else.
//
// The merged result is checked by (*Config).Validate. The identity API key
// has no default: pass -k or set BOTHOSTER_IDENTITY_API_KEY (or
// "identity_api_key" in the JSON file), otherwise the CLI exits before the
// REPL starts and names the missing setting.
//
// Supported flags
//
//	-a string   registry API base URL
//	-e string   identity endpoint
//	-k string   identity API key
//	-t          verify bot tokens with Telegram before creating
//	-d string   local database path
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  // registry
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "identity_api_key": "AIza...",
//	  "online_check_interval": "10s",
//	  "request_timeout": "15s",
//	}
//
// Environment
//
//	BOTHOSTER_API_BASE_URL, BOTHOSTER_IDENTITY_ENDPOINT,
//	BOTHOSTER_IDENTITY_API_KEY, BOTHOSTER_TELEGRAM_API_URL,
//	BOTHOSTER_VERIFY_TOKENS, BOTHOSTER_DATABASE_PATH,
//	BOTHOSTER_ONLINE_CHECK_INTERVAL, BOTHOSTER_REQUEST_TIMEOUT,
//	BOTHOSTER_LOG_LEVEL
package config
