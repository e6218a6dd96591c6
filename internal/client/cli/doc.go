// Package cli provides the interactive BotHoster command-line client.
//
// It wires configuration, the local SQLite mirror, the identity adapter, the
// bot registry client and the view/state container behind a small REPL.
// Typical flow: log in or sign up, list the account's bots, create, edit or
// delete them, dry-run a bot script locally and inspect Telegram webhooks.
//
// A background gocron job pings the registry and shows online/offline in
// the prompt. The REPL is started via App.Run(ctx), which blocks until the
// user exits. See App, StartOnlineStatusWatcher and runREPL for details.
package cli
