package bots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bothoster/internal/dbx"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]models.Bot, error) {
	raw, err := metadata.NewSQLiteRepository(r.db).Get(ctx, KeyBots)
	if errors.Is(err, metadata.ErrNotFound) {
		return []models.Bot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bots: %w", err)
	}

	list := []models.Bot{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if list == nil {
		list = []models.Bot{}
	}
	return list, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, list []models.Bot) error {
	if list == nil {
		list = []models.Bot{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal bots: %w", err)
	}
	savedAt := r.now().UTC().Format(time.RFC3339Nano)

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := metadata.NewSQLiteRepository(tx)
		if err := meta.Set(ctx, KeyBots, data); err != nil {
			return err
		}
		return meta.Set(ctx, KeySavedAt, []byte(savedAt))
	})
}

func (r *SQLiteRepository) SavedAt(ctx context.Context) (time.Time, error) {
	raw, err := metadata.NewSQLiteRepository(r.db).Get(ctx, KeySavedAt)
	if errors.Is(err, metadata.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load saved_at: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: saved_at: %w", ErrCorrupt, err)
	}
	return t, nil
}
