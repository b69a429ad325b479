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
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	expireIfStale(ctx context.Context)
	Browse(ctx context.Context, args []string) error
	ShowProduct(ctx context.Context, id string) error
	Review(ctx context.Context, id string) error
	Add(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	Remove(ctx context.Context, id string) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Shipping(ctx context.Context) error
	Payment(ctx context.Context) error
	PlaceOrder(ctx context.Context) error
	Orders(ctx context.Context) error
	ShowOrder(ctx context.Context, id string) error
	Profile(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: browse [keyword] [page], product <id>, add <id> [qty], cart, remove <id>, login, register, exit"
	helpLoggedIn  = "Available commands: browse [keyword] [page], product <id>, review <id>, add <id> [qty], cart, remove <id>, shipping, payment, placeorder, orders, order <id>, profile, logout, exit"
)

// runREPL starts the read-eval-print loop for the storefront client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on a. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit". Before every dispatch it lets the app run the delayed
// session-expiry sign-out, so expiry takes effect on the REPL goroutine.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		a.expireIfStale(ctx)

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
		case "browse", "b":
			err = a.Browse(ctx, args)
		case "product", "p":
			if len(args) == 0 {
				printlnFn("Usage: product <id>")
				continue
			}
			err = a.ShowProduct(ctx, args[0])
		case "review":
			if len(args) == 0 {
				printlnFn("Usage: review <id>")
				continue
			}
			err = a.Review(ctx, args[0])
		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <id> [qty]")
				continue
			}
			err = a.Add(ctx, args)
		case "cart", "c":
			err = a.ShowCart(ctx)
		case "remove", "rm":
			if len(args) == 0 {
				printlnFn("Usage: remove <id>")
				continue
			}
			err = a.Remove(ctx, args[0])
		case "login":
			err = a.Login(ctx)
		case "register":
			err = a.Register(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "shipping":
			err = a.Shipping(ctx)
		case "payment":
			err = a.Payment(ctx)
		case "placeorder", "checkout":
			err = a.PlaceOrder(ctx)
		case "orders":
			err = a.Orders(ctx)
		case "order":
			if len(args) == 0 {
				printlnFn("Usage: order <id>")
				continue
			}
			err = a.ShowOrder(ctx, args[0])
		case "profile":
			err = a.Profile(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command: " + cmd)
		}

		if err != nil {
			printlnFn("Error: " + err.Error())
		}
	}
}
