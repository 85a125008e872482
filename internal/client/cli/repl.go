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
	isLoggedIn(ctx context.Context) bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Menu(ctx context.Context) error
	Add(ctx context.Context, arg string) error
	Remove(ctx context.Context, name string) error
	Qty(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Clear(ctx context.Context) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
	Order(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Rewards(ctx context.Context) error
	Redeem(ctx context.Context, choice string) error
	Reset(ctx context.Context) error
	// finish runs after every command with its result.
	finish(ctx context.Context, err error)
}

const (
	helpGuest = "Available commands: menu, add <n|name>, remove <name>, qty <name> <n>, cart, clear, rewards, signup, login, reset, exit"
	helpUser  = "Available commands: menu, add <n|name>, remove <name>, qty <name> <n>, cart, clear, checkout, orders, order <id>, cancel <id>, rewards, redeem [1-3], profile, logout, reset, exit"
)

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx
// cancellation.
//
// The first word of a line selects the command and the rest are its
// arguments, so "add Mocha Magic" and "add 5" both work. The prompt shows
// statusFn. Command errors are handed to a.finish, which reports them and
// performs any page change the command queued.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("mocha> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]
		rest := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}
			continue

		case "signup", "register":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "menu":
			err = a.Menu(ctx)

		case "add":
			err = a.Add(ctx, rest)

		case "remove", "rm":
			err = a.Remove(ctx, rest)

		case "qty":
			err = a.Qty(ctx, args)

		case "cart":
			err = a.Cart(ctx)

		case "clear":
			err = a.Clear(ctx)

		case "checkout":
			err = a.Checkout(ctx)

		case "orders":
			err = a.Orders(ctx)

		case "order":
			err = a.Order(ctx, rest)

		case "cancel":
			err = a.Cancel(ctx, rest)

		case "rewards":
			err = a.Rewards(ctx)

		case "redeem":
			err = a.Redeem(ctx, rest)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		a.finish(ctx, err)
	}
}
