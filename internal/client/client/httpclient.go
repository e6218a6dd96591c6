package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/netx"
)

type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q: want http(s)://host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	if err := netx.Probe(ctx, c.httpc, c.baseURL+"/"); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *HTTPClient) CreateBot(ctx context.Context, req models.CreateBotRequest) (*models.CreateBotResponse, error) {
	resp, err := netx.DoJSON[models.CreateBotResponse](ctx, netx.Params{
		Method:     http.MethodPost,
		URL:        c.baseURL + "/api/bot/create",
		Body:       req,
		HTTPClient: c.httpc,
		Scrubber:   netx.NewScrubber(req.Token),
	})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateBot(ctx context.Context, req models.UpdateBotRequest) error {
	_, err := netx.Do(ctx, netx.Params{
		Method:     http.MethodPost,
		URL:        c.baseURL + "/api/bot/update",
		Body:       req,
		HTTPClient: c.httpc,
	})
	if err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *HTTPClient) DeleteBot(ctx context.Context, botID string) error {
	_, err := netx.Do(ctx, netx.Params{
		Method:     http.MethodDelete,
		URL:        c.baseURL + "/api/bot/" + url.PathEscape(botID),
		HTTPClient: c.httpc,
	})
	if err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, netx.ErrTransport) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	var se *netx.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrUnauthorized, err)
		default:
			return fmt.Errorf("%w: %w", ErrRejected, err)
		}
	}
	return fmt.Errorf("registry: %w", err)
}
