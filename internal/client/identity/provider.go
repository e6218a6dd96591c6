package identity

import (
	"context"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
)

// Provider is the identity contract used by the presentation layer.
type Provider interface {
	SignUp(ctx context.Context, email string, password []byte) (*models.User, error)
	SignIn(ctx context.Context, email string, password []byte) (*models.User, error)
	SignOut(ctx context.Context) error
	// Subscribe registers fn for session changes (nil means signed out).
	// Callbacks run synchronously in subscription order.
	Subscribe(fn func(*models.User)) (unsubscribe func())
	CurrentUser() *models.User
}
