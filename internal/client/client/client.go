package client

import (
	"context"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	CreateBot(ctx context.Context, req models.CreateBotRequest) (*models.CreateBotResponse, error)
	UpdateBot(ctx context.Context, req models.UpdateBotRequest) error
	DeleteBot(ctx context.Context, botID string) error
}
