// Package telegram queries the Telegram Bot API on behalf of hosted bots:
// token preflight (getMe) and live webhook status (getWebhookInfo).
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/logging"
	"github.com/dmitrijs2005/bothoster/internal/netx"
)

// ErrInvalidToken means Telegram does not recognise the token.
var ErrInvalidToken = errors.New("invalid bot token")

// checkConcurrency bounds parallel getWebhookInfo calls in CheckAll.
const checkConcurrency = 4

type BotInfo struct {
	ID        int64
	Username  string
	FirstName string
}

type WebhookStatus struct {
	URL            string
	PendingUpdates int
	LastError      string
	LastErrorAt    time.Time
}

// Active reports whether Telegram has a webhook registered.
func (s *WebhookStatus) Active() bool {
	return s != nil && s.URL != ""
}

// Report is the CheckAll outcome for one bot.
type Report struct {
	BotID  string
	Status *WebhookStatus
	Err    error
}

type Inspector struct {
	serverURL string
	httpc     *http.Client
	log       logging.Logger
}

func NewInspector(serverURL string, timeout time.Duration, log logging.Logger) *Inspector {
	return &Inspector{
		serverURL: serverURL,
		httpc:     &http.Client{Timeout: timeout},
		log:       log.With("component", "telegram"),
	}
}

func (i *Inspector) newBot(token string) (*bot.Bot, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	b, err := bot.New(token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(i.serverURL),
		bot.WithHTTPClient(i.httpc.Timeout, i.httpc),
	)
	if err != nil {
		return nil, netx.Scrub(fmt.Errorf("create bot client: %w", err), token)
	}
	return b, nil
}

func (i *Inspector) GetMe(ctx context.Context, token string) (*BotInfo, error) {
	b, err := i.newBot(token)
	if err != nil {
		return nil, err
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return nil, mapError(err, token)
	}

	return &BotInfo{ID: me.ID, Username: me.Username, FirstName: me.FirstName}, nil
}

func (i *Inspector) WebhookStatus(ctx context.Context, token string) (*WebhookStatus, error) {
	b, err := i.newBot(token)
	if err != nil {
		return nil, err
	}

	info, err := b.GetWebhookInfo(ctx)
	if err != nil {
		return nil, mapError(err, token)
	}

	st := &WebhookStatus{
		URL:            info.URL,
		PendingUpdates: int(info.PendingUpdateCount),
		LastError:      info.LastErrorMessage,
	}
	if info.LastErrorDate > 0 {
		st.LastErrorAt = time.Unix(int64(info.LastErrorDate), 0).UTC()
	}
	return st, nil
}

// CheckAll fetches webhook status for every bot concurrently. Reports come
// back in input order; per-bot failures are carried in Report.Err.
func (i *Inspector) CheckAll(ctx context.Context, list []models.Bot) []Report {
	reports := make([]Report, len(list))

	var g errgroup.Group
	g.SetLimit(checkConcurrency)

	for n := range list {
		b := list[n]
		g.Go(func() error {
			st, err := i.WebhookStatus(ctx, b.Token)
			if err != nil {
				i.log.Warn(ctx, "webhook check failed", "bot_id", b.ID, "error", err)
			}
			reports[n] = Report{BotID: b.ID, Status: st, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func mapError(err error, token string) error {
	if errors.Is(err, bot.ErrorUnauthorized) || errors.Is(err, bot.ErrorNotFound) {
		return fmt.Errorf("%w: %w", ErrInvalidToken, netx.Scrub(err, token))
	}
	return netx.Scrub(err, token)
}
