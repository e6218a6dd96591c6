// Package models defines client-side data models used by the BotHoster CLI.
package models

// MaxBotsPerAccount is the per-account bot quota.
const MaxBotsPerAccount = 10

// Defaults applied when the form or the registry leaves a field blank.
const (
	DefaultBotName     = "My Bot"
	DefaultBotUsername = "bot"
	DefaultScript      = "def handle_message(text, message):\n    return \"Hello: \" + text"
)

// Bot is a hosted Telegram bot deployment as seen by the client.
// The JSON form is what the local mirror stores.
type Bot struct {
	ID         string `json:"bot_id"`
	Name       string `json:"name"`
	Username   string `json:"bot_username"`
	Token      string `json:"bot_token"`
	WebhookURL string `json:"webhook_url"`
	WebhookSet bool   `json:"webhook_set"`
	Script     string `json:"script"`
}

// User is the signed-in identity. No credential is kept.
type User struct {
	UID   string
	Email string
}

// CreateBotInput is the create form as submitted by the user.
type CreateBotInput struct {
	Name   string
	Token  string `validate:"required"`
	Script string
}

// FindBot returns the index of the bot with the given id, or -1.
func FindBot(bots []Bot, id string) int {
	for i := range bots {
		if bots[i].ID == id {
			return i
		}
	}
	return -1
}
