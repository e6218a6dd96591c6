package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/telegram"
)

// ---- fake registry client ----

type fakeClient struct {
	CreateResp *models.CreateBotResponse
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	PingErr    error
	CloseErr   error

	CreateCalls []models.CreateBotRequest
	UpdateCalls []models.UpdateBotRequest
	DeleteCalls []string
	PingCalls   int
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Ping(ctx context.Context) error {
	f.PingCalls++
	return f.PingErr
}

func (f *fakeClient) CreateBot(ctx context.Context, req models.CreateBotRequest) (*models.CreateBotResponse, error) {
	f.CreateCalls = append(f.CreateCalls, req)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	if f.CreateResp == nil {
		return &models.CreateBotResponse{}, nil
	}
	cp := *f.CreateResp
	return &cp, nil
}

func (f *fakeClient) UpdateBot(ctx context.Context, req models.UpdateBotRequest) error {
	f.UpdateCalls = append(f.UpdateCalls, req)
	return f.UpdateErr
}

func (f *fakeClient) DeleteBot(ctx context.Context, botID string) error {
	f.DeleteCalls = append(f.DeleteCalls, botID)
	return f.DeleteErr
}

// ---- fake mirror ----

type fakeRepo struct {
	Stored  []models.Bot
	LoadErr error
	SaveErr error
	Saves   int

	SavedTime time.Time
}

func (f *fakeRepo) Load(ctx context.Context) ([]models.Bot, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return append([]models.Bot{}, f.Stored...), nil
}

func (f *fakeRepo) Save(ctx context.Context, list []models.Bot) error {
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Stored = append([]models.Bot{}, list...)
	return nil
}

func (f *fakeRepo) SavedAt(ctx context.Context) (time.Time, error) {
	return f.SavedTime, nil
}

// ---- fake telegram preflight ----

type fakeVerifier struct {
	Info  *telegram.BotInfo
	Err   error
	Calls []string
}

func (f *fakeVerifier) GetMe(ctx context.Context, token string) (*telegram.BotInfo, error) {
	f.Calls = append(f.Calls, token)
	return f.Info, f.Err
}

// ---- fake identity provider ----

type fakeProvider struct {
	User        *models.User
	Err         error
	SeenPass    string
	SignOuts    int
	subscribers []func(*models.User)
}

func (f *fakeProvider) SignUp(ctx context.Context, email string, password []byte) (*models.User, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeProvider) SignIn(ctx context.Context, email string, password []byte) (*models.User, error) {
	f.SeenPass = string(password)
	return f.User, f.Err
}

func (f *fakeProvider) SignOut(ctx context.Context) error {
	f.SignOuts++
	return nil
}

func (f *fakeProvider) Subscribe(fn func(*models.User)) func() {
	f.subscribers = append(f.subscribers, fn)
	return func() {}
}

func (f *fakeProvider) CurrentUser() *models.User { return f.User }

func makeBots(n int) []models.Bot {
	out := make([]models.Bot, n)
	for i := range out {
		out[i] = models.Bot{ID: string(rune('a' + i)), Name: "bot", Token: "t", Script: "s"}
	}
	return out
}
