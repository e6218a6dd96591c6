package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/dmitrijs2005/bothoster/internal/buildinfo"
	"github.com/dmitrijs2005/bothoster/internal/client/client"
	"github.com/dmitrijs2005/bothoster/internal/client/config"
	"github.com/dmitrijs2005/bothoster/internal/client/identity"
	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/services"
	"github.com/dmitrijs2005/bothoster/internal/client/state"
	"github.com/dmitrijs2005/bothoster/internal/client/storage"
	"github.com/dmitrijs2005/bothoster/internal/client/telegram"
	"github.com/dmitrijs2005/bothoster/internal/filex"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// webhookChecker is the part of the Telegram inspector the REPL uses.
type webhookChecker interface {
	CheckAll(ctx context.Context, list []models.Bot) []telegram.Report
}

type App struct {
	config    *config.Config
	log       logging.Logger
	repos     *storage.Repositories
	auth      services.AuthService
	session   *state.Container
	inspector webhookChecker
	reader    *bufio.Reader
	out       io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the local mirror and builds the service graph for cfg.
func NewApp(ctx context.Context, cfg *config.Config, base logging.Logger) (*App, error) {
	log := base.With("component", "cli")

	dsn, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	repos, err := storage.InitDatabase(ctx, dsn)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	registry, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	provider := identity.NewClient(cfg.IdentityEndpoint, cfg.IdentityAPIKey, cfg.RequestTimeout, base)
	inspector := telegram.NewInspector(cfg.TelegramAPIURL, cfg.RequestTimeout, base)

	var verifier services.TokenVerifier
	if cfg.VerifyTokens {
		verifier = inspector
	}

	as := services.NewAuthService(provider, registry, base)
	bs := services.NewBotService(registry, repos.Bots, verifier, base)

	return &App{
		config:    cfg,
		log:       log,
		repos:     repos,
		auth:      as,
		session:   state.New(as, bs, base),
		inspector: inspector,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.View() == state.ViewDashboard
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() && a.session.Email() != "" {
		s = a.session.Email() + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or the input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(context.Background())

	printlnFn(fmt.Sprintf("Welcome to BotHoster CLI %s (type 'help' for commands)", buildinfo.Version()))

	stop, err := a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	if err != nil {
		return err
	}
	defer stop()

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// StartOnlineStatusWatcher schedules a registry ping every interval, the
// first one immediately. The returned function stops the scheduler.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) (func(), error) {
	s, err := gocron.NewScheduler(gocron.WithLogger(logging.NewGocronLogger(a.log)))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(a.checkOnline, ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule online check: %w", err)
	}

	s.Start()
	return func() {
		if err := s.Shutdown(); err != nil {
			a.log.Warn(ctx, "stop scheduler", "error", err)
		}
	}, nil
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.auth.Ping(pctx); err != nil {
		a.log.Debug(ctx, "registry ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// Close releases the session subscription, the registry client and the
// database.
func (a *App) Close(ctx context.Context) {
	if a.session != nil {
		a.session.Close()
	}
	if a.auth != nil {
		_ = a.auth.Close(ctx)
	}
	if a.repos != nil {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(ctx, "close database", "error", err)
		}
	}
}
