package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// getStatus renders the prompt status: user name and cart size, when present.
func (a *App) getStatus() string {
	s := ""
	if name := a.view.UserName(); name != "" {
		s = name
	}
	if n := a.view.ItemCount(); n > 0 {
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("%d in cart", n)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints the welcome banner and runs the REPL until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the storefront client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
