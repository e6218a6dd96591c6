package bots

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
)

const (
	KeyBots    = "bots"
	KeySavedAt = "bots_saved_at"
)

// ErrCorrupt is returned by Load when the stored document is not a JSON
// array of bots.
var ErrCorrupt = errors.New("stored bot list is corrupt")

type Repository interface {
	// Load returns an empty list when nothing was saved yet.
	Load(ctx context.Context) ([]models.Bot, error)
	Save(ctx context.Context, list []models.Bot) error
	// SavedAt returns the zero time when nothing was saved yet.
	SavedAt(ctx context.Context) (time.Time, error)
}
