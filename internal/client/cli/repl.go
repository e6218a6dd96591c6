package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	List(ctx context.Context) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, botID string) error
	Delete(ctx context.Context, botID string) error
	Show(ctx context.Context, botID string) error
	Try(ctx context.Context, botID, text string) error
	Webhooks(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, signup, exit"
	helpLoggedIn  = "Available commands: (l)ist, create, edit <id>, delete <id>, show <id>, try <id> [text], webhooks, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the BotHoster CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             show available commands
//	  - login            authenticate
//	  - signup           create an account
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - list | l         list bots
//	  - create           deploy a new bot
//	  - edit <id>        replace a bot's script
//	  - delete <id>      delete a bot (asks for confirmation)
//	  - show <id>        show a single bot
//	  - try <id> [text]  run the bot's script locally
//	  - webhooks         query Telegram for every bot's webhook
//	  - logout           log out
//	  - exit | quit      leave the program
//
// The prompt reads through the same reader as the interactive helpers so
// buffered input is never lost between them. Errors returned by command
// handlers are ignored here; handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("bh> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if a.isLoggedIn() {
			dispatchLoggedIn(ctx, a, cmd, args)
		} else {
			dispatchLoggedOut(ctx, a, cmd)
		}
	}
}

func dispatchLoggedOut(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "login":
		_ = a.Login(ctx)

	case "signup", "register":
		_ = a.Signup(ctx)

	case "l", "list", "create", "edit", "delete", "show", "try", "webhooks", "logout":
		printlnFn("Please log in first")

	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "l", "list":
		_ = a.List(ctx)

	case "create":
		_ = a.Create(ctx)

	case "edit", "delete", "show", "try":
		if len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return
		}
		id := args[0]
		switch cmd {
		case "edit":
			_ = a.Edit(ctx, id)
		case "delete":
			_ = a.Delete(ctx, id)
		case "show":
			_ = a.Show(ctx, id)
		case "try":
			_ = a.Try(ctx, id, strings.Join(args[1:], " "))
		}

	case "webhooks":
		_ = a.Webhooks(ctx)

	case "logout":
		_ = a.Logout(ctx)

	case "login", "signup", "register":
		printlnFn("Already logged in")

	default:
		printlnFn("Unknown command:", cmd)
	}
}
