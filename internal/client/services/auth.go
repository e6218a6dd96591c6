// Package services contains application services for the BotHoster client.
// This file defines the session service: sign-up, sign-in, sign-out, the
// session subscription and the registry liveness probe.
package services

import (
	"context"

	"github.com/dmitrijs2005/bothoster/internal/client/client"
	"github.com/dmitrijs2005/bothoster/internal/client/identity"
	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/common"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - SignUp/SignIn: authenticate with the identity provider. The password
//     buffer is wiped before returning, whatever the outcome.
//   - SignOut: end the session locally.
//   - Subscribe/CurrentUser: session observation.
//   - Ping: check registry liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	SignUp(ctx context.Context, email string, password []byte) (*models.User, error)
	SignIn(ctx context.Context, email string, password []byte) (*models.User, error)
	SignOut(ctx context.Context) error
	Subscribe(fn func(*models.User)) (unsubscribe func())
	CurrentUser() *models.User
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	provider identity.Provider
	client   client.Client
	log      logging.Logger
}

// NewAuthService binds the identity provider and the registry client.
func NewAuthService(provider identity.Provider, client client.Client, log logging.Logger) AuthService {
	return &authService{provider: provider, client: client, log: log.With("component", "auth")}
}

func (a *authService) SignUp(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)
	return a.provider.SignUp(ctx, email, password)
}

func (a *authService) SignIn(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)
	return a.provider.SignIn(ctx, email, password)
}

func (a *authService) SignOut(ctx context.Context) error {
	return a.provider.SignOut(ctx)
}

func (a *authService) Subscribe(fn func(*models.User)) func() {
	return a.provider.Subscribe(fn)
}

func (a *authService) CurrentUser() *models.User {
	return a.provider.CurrentUser()
}

// Ping proxies a liveness check to the registry client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the registry client.
func (a *authService) Close(ctx context.Context) error {
	if err := a.client.Close(); err != nil {
		a.log.Warn(ctx, "close registry client", "error", err)
		return err
	}
	return nil
}
