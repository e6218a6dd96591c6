package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected wraps a *netx.StatusError carrying the status and body.
	ErrRejected = errors.New("request rejected")
)
