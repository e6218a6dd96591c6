package models

// CreateBotRequest is the registry create payload.
type CreateBotRequest struct {
	Token  string `json:"bot_token"`
	Name   string `json:"name"`
	Script string `json:"script"`
}

// CreateBotResponse is the registry create reply. Every field is optional;
// WebhookSet is a pointer so an explicit false can be told from absence.
type CreateBotResponse struct {
	ID         string `json:"bot_id,omitempty"`
	Username   string `json:"bot_username,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
	WebhookSet *bool  `json:"webhook_set,omitempty"`
}

type UpdateBotRequest struct {
	ID     string `json:"bot_id"`
	Script string `json:"script"`
}
