package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/logging"
	"github.com/dmitrijs2005/bothoster/internal/netx"
)

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type idClaims struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type subscriber struct {
	id int
	fn func(*models.User)
}

// Client talks to the Identity Toolkit REST API.
type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
	log      logging.Logger

	mu      sync.Mutex
	current *models.User
	subs    []subscriber
	nextID  int
}

var _ Provider = (*Client)(nil)

func NewClient(endpoint, apiKey string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: timeout},
		log:      log.With("component", "identity"),
	}
}

func (c *Client) SignUp(ctx context.Context, email string, password []byte) (*models.User, error) {
	return c.authenticate(ctx, "accounts:signUp", email, password)
}

func (c *Client) SignIn(ctx context.Context, email string, password []byte) (*models.User, error) {
	return c.authenticate(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) authenticate(ctx context.Context, method, email string, password []byte) (*models.User, error) {
	u := fmt.Sprintf("%s/%s?key=%s", c.endpoint, method, url.QueryEscape(c.apiKey))

	resp, err := netx.DoJSON[authResponse](ctx, netx.Params{
		Method:     http.MethodPost,
		URL:        u,
		Body:       authRequest{Email: email, Password: string(password), ReturnSecureToken: true},
		HTTPClient: c.httpc,
		Scrubber:   netx.NewScrubber(c.apiKey, url.QueryEscape(c.apiKey)),
	})
	if err != nil {
		ierr := classify(err)
		c.log.Warn(ctx, "identity call failed", "method", method, "code", ierr.Code, "error", err)
		return nil, ierr
	}

	user, err := userFromResponse(resp)
	if err != nil {
		c.log.Error(ctx, "identity response unusable", "method", method, "error", err)
		return nil, &Error{Code: CodeInternal, Err: err}
	}

	c.setUser(user)
	c.log.Info(ctx, "signed in", "uid", user.UID)
	return user, nil
}

// userFromResponse prefers the explicit response fields and falls back to
// the ID token claims. The token signature is not verified: the client
// never makes authorization decisions from it.
func userFromResponse(resp authResponse) (*models.User, error) {
	user := &models.User{UID: resp.LocalID, Email: resp.Email}

	if resp.IDToken != "" && (user.UID == "" || user.Email == "") {
		var claims idClaims
		if _, _, err := jwt.NewParser().ParseUnverified(resp.IDToken, &claims); err != nil {
			return nil, fmt.Errorf("parse id token: %w", err)
		}
		if user.UID == "" {
			user.UID = claims.UserID
		}
		if user.UID == "" {
			user.UID = claims.Subject
		}
		if user.Email == "" {
			user.Email = claims.Email
		}
	}

	if user.UID == "" {
		return nil, errors.New("response has no user id")
	}
	return user, nil
}

// SignOut is local: it forgets the session and notifies subscribers.
func (c *Client) SignOut(ctx context.Context) error {
	c.setUser(nil)
	c.log.Info(ctx, "signed out")
	return nil
}

func (c *Client) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	u := *c.current
	return &u
}

func (c *Client) Subscribe(fn func(*models.User)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Client) setUser(u *models.User) {
	c.mu.Lock()
	c.current = u
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		if u == nil {
			s.fn(nil)
			continue
		}
		cp := *u
		s.fn(&cp)
	}
}
