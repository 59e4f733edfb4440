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
	flushNotices()
	Home(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Send(ctx context.Context) error
	History(ctx context.Context) error
	Stats(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the fraudsentry CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Pending transfer notices are
// printed before every prompt. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Not logged in:
//
//	help, home, register, login, forgot, stats, exit | quit
//
// Logged in:
//
//	help, home, profile, edit, send | users, history, stats, logout, exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		a.flushNotices()
		printlnFn(fmt.Sprintf("fs> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		if needsSession(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, profile, edit, send, history, stats, logout, exit")
			} else {
				printlnFn("Available commands: home, register, login, forgot, stats, exit")
			}

		case "home":
			_ = a.Home(ctx)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "send", "users":
			_ = a.Send(ctx)

		case "history":
			_ = a.History(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "profile", "edit", "send", "users", "history", "logout":
		return true
	}
	return false
}

// lineReader hands out at most one line per Read so a Scanner on top of it
// never buffers input that a prompt reading the same bufio.Reader expects.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}
