package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

func TestAuthService_SignIn_WipesPassword(t *testing.T) {
	p := &fakeProvider{User: &models.User{UID: "u", Email: "e"}}
	a := NewAuthService(p, &fakeClient{}, logging.Discard())

	pw := []byte("secret")
	u, err := a.SignIn(context.Background(), "e", pw)
	require.NoError(t, err)

	assert.Equal(t, "u", u.UID)
	assert.Equal(t, "secret", p.SeenPass)
	assert.Equal(t, make([]byte, 6), pw)
}

func TestAuthService_SignUp_WipesOnError(t *testing.T) {
	p := &fakeProvider{Err: errors.New("nope")}
	a := NewAuthService(p, &fakeClient{}, logging.Discard())

	pw := []byte("123456")
	_, err := a.SignUp(context.Background(), "e", pw)
	require.Error(t, err)
	assert.Equal(t, make([]byte, 6), pw)
}

func TestAuthService_Passthrough(t *testing.T) {
	p := &fakeProvider{User: &models.User{UID: "u"}}
	c := &fakeClient{PingErr: errors.New("down"), CloseErr: errors.New("close")}
	a := NewAuthService(p, c, logging.Discard())
	ctx := context.Background()

	require.NoError(t, a.SignOut(ctx))
	assert.Equal(t, 1, p.SignOuts)

	a.Subscribe(func(*models.User) {})
	assert.Len(t, p.subscribers, 1)

	assert.Equal(t, "u", a.CurrentUser().UID)
	assert.EqualError(t, a.Ping(ctx), "down")
	assert.Equal(t, 1, c.PingCalls)
	assert.EqualError(t, a.Close(ctx), "close")
}
