// Package client contains the transport to the BotHoster registry API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     registry: CreateBot, UpdateBot, DeleteBot and Ping.
//  2. A JSON-over-HTTP implementation (see HTTPClient) built on netx.
//     Routes are POST /api/bot/create, POST /api/bot/update and
//     DELETE /api/bot/{id}; Ping is a GET of the base URL.
//
// # Error Handling
//
// Failures are classified into sentinel errors that callers can match with
// errors.Is: ErrUnavailable (no response), ErrUnauthorized (401/403) and
// ErrRejected (any other non-2xx). The wrapped *netx.StatusError keeps the
// status code and body for logs. Bot tokens never appear in error text.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call makes a single attempt
// bounded by the client timeout and the caller's context.
package client
