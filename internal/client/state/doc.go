// Package state is the presentation state of the BotHoster client.
//
// A Container holds what the dashboard shows: which view is active (login,
// signup or dashboard), which modal is open (create or edit), the in-memory
// bot list, the form fields and the error and success banners. The REPL
// drives it from a single goroutine; Container is not safe for concurrent
// use.
//
// Every action maps service errors to a fixed banner string, so a caller
// only has to render ErrorMessage() and SuccessMessage() after each call.
package state
