package services

import "errors"

var (
	ErrTokenRequired = errors.New("bot token is required")
	ErrQuotaReached  = errors.New("bot quota reached")
	ErrBotNotFound   = errors.New("bot not found")
	ErrInvalidToken  = errors.New("telegram rejected the bot token")
)
