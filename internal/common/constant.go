// Package common contains shared constants and small helpers used across
// BotHoster components.
package common

// AppName prefixes the User-Agent header sent to remote services.
const AppName = "bothoster"

// SecretMask replaces the hidden part of a secret in user-facing output.
const SecretMask = "…"
