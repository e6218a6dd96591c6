package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/bothoster/internal/client/client"
	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/repositories/bots"
	"github.com/dmitrijs2005/bothoster/internal/client/telegram"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

// BotService is the bot registry contract used by the presentation layer.
//
// Mutations take the caller's current list and return the next one; the
// input slice is never modified. On error the returned list is the input.
// Successful mutations are written to the local mirror; a failed mirror
// write is logged and does not fail the call.
type BotService interface {
	// Load reads the local mirror. A corrupt mirror yields an empty list.
	Load(ctx context.Context) ([]models.Bot, error)
	Create(ctx context.Context, current []models.Bot, in models.CreateBotInput) ([]models.Bot, *models.Bot, error)
	// Update replaces the script of botID.
	Update(ctx context.Context, current []models.Bot, botID, script string) ([]models.Bot, error)
	Delete(ctx context.Context, current []models.Bot, botID string) ([]models.Bot, error)
}

// TokenVerifier resolves a bot token before it is sent to the registry.
type TokenVerifier interface {
	GetMe(ctx context.Context, token string) (*telegram.BotInfo, error)
}

type botService struct {
	client   client.Client
	repo     bots.Repository
	verifier TokenVerifier
	validate *validator.Validate
	log      logging.Logger
	newID    func() string
}

// NewBotService wires the registry transport and the mirror. A nil
// verifier disables the Telegram preflight.
func NewBotService(c client.Client, repo bots.Repository, verifier TokenVerifier, log logging.Logger) BotService {
	return &botService{
		client:   c,
		repo:     repo,
		verifier: verifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With("component", "bots"),
		newID:    uuid.NewString,
	}
}

func (s *botService) Load(ctx context.Context) ([]models.Bot, error) {
	list, err := s.repo.Load(ctx)
	if errors.Is(err, bots.ErrCorrupt) {
		s.log.Warn(ctx, "local bot list is corrupt, starting empty", "error", err)
		return []models.Bot{}, nil
	}
	if err != nil {
		return []models.Bot{}, fmt.Errorf("load bots: %w", err)
	}

	if savedAt, err := s.repo.SavedAt(ctx); err != nil {
		s.log.Debug(ctx, "read mirror timestamp", "error", err)
	} else if !savedAt.IsZero() {
		s.log.Debug(ctx, "mirror loaded", "count", len(list), "saved_at", savedAt)
	}
	return list, nil
}

func (s *botService) Create(ctx context.Context, current []models.Bot, in models.CreateBotInput) ([]models.Bot, *models.Bot, error) {
	in.Token = strings.TrimSpace(in.Token)
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return current, nil, ErrTokenRequired
	}
	if len(current) >= models.MaxBotsPerAccount {
		return current, nil, ErrQuotaReached
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = models.DefaultBotName
	}

	username := ""
	if s.verifier != nil {
		info, err := s.verifier.GetMe(ctx, in.Token)
		switch {
		case errors.Is(err, telegram.ErrInvalidToken):
			s.log.Info(ctx, "token preflight rejected", "error", err)
			return current, nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		case err != nil:
			s.log.Warn(ctx, "token preflight unavailable, continuing", "error", err)
		default:
			username = info.Username
		}
	}

	resp, err := s.client.CreateBot(ctx, models.CreateBotRequest{Token: in.Token, Name: in.Name, Script: in.Script})
	if err != nil {
		s.log.Error(ctx, "create bot failed", "error", err)
		return current, nil, fmt.Errorf("create bot: %w", err)
	}

	b := s.fromResponse(ctx, current, in, resp, username)

	next := append(slices.Clone(current), b)
	s.save(ctx, next)
	s.log.Info(ctx, "bot created", "bot_id", b.ID, "count", len(next))

	return next, &b, nil
}

// fromResponse fills the fields the registry left out. A bot_id that is
// missing or already in current is replaced with a local one.
func (s *botService) fromResponse(ctx context.Context, current []models.Bot, in models.CreateBotInput, resp *models.CreateBotResponse, username string) models.Bot {
	if resp == nil {
		resp = &models.CreateBotResponse{}
	}

	b := models.Bot{
		ID:         resp.ID,
		Name:       in.Name,
		Username:   resp.Username,
		Token:      in.Token,
		WebhookURL: resp.WebhookURL,
		WebhookSet: true,
		Script:     in.Script,
	}
	if resp.WebhookSet != nil {
		b.WebhookSet = *resp.WebhookSet
	}
	if b.Username == "" {
		b.Username = username
	}
	if b.Username == "" {
		b.Username = models.DefaultBotUsername
	}
	if b.ID != "" && models.FindBot(current, b.ID) >= 0 {
		s.log.Warn(ctx, "registry returned a bot_id already in the list, assigning a local one", "bot_id", b.ID)
		b.ID = ""
	}
	for b.ID == "" || models.FindBot(current, b.ID) >= 0 {
		b.ID = s.newID()
	}
	return b
}

func (s *botService) Update(ctx context.Context, current []models.Bot, botID, script string) ([]models.Bot, error) {
	idx := models.FindBot(current, botID)
	if idx < 0 {
		return current, ErrBotNotFound
	}

	if err := s.client.UpdateBot(ctx, models.UpdateBotRequest{ID: botID, Script: script}); err != nil {
		s.log.Error(ctx, "update bot failed", "bot_id", botID, "error", err)
		return current, fmt.Errorf("update bot: %w", err)
	}

	next := slices.Clone(current)
	next[idx].Script = script
	s.save(ctx, next)
	s.log.Info(ctx, "bot updated", "bot_id", botID)

	return next, nil
}

func (s *botService) Delete(ctx context.Context, current []models.Bot, botID string) ([]models.Bot, error) {
	idx := models.FindBot(current, botID)
	if idx < 0 {
		return current, ErrBotNotFound
	}

	if err := s.client.DeleteBot(ctx, botID); err != nil {
		s.log.Error(ctx, "delete bot failed", "bot_id", botID, "error", err)
		return current, fmt.Errorf("delete bot: %w", err)
	}

	next := slices.Delete(slices.Clone(current), idx, idx+1)
	s.save(ctx, next)
	s.log.Info(ctx, "bot deleted", "bot_id", botID, "count", len(next))

	return next, nil
}

func (s *botService) save(ctx context.Context, list []models.Bot) {
	if err := s.repo.Save(ctx, list); err != nil {
		s.log.Warn(ctx, "mirror write failed", "error", err)
	}
}
