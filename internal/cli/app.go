// Package cli is the interactive storefront client: a REPL that drives the
// cart ledger, session manager, and checkout gate, and renders through the
// derived view selectors.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/session"
	"storefront/internal/store"
	"storefront/internal/view"
)

// App wires the state layer together and owns the REPL. All state mutations
// happen on the REPL goroutine; the expiry watcher only reads.
type App struct {
	config *config.Config
	log    logging.Logger

	auth    api.AuthAPI
	catalog api.CatalogAPI
	orders  api.OrderAPI

	db      *sql.DB
	ledger  *cart.Ledger
	session *session.Manager
	gate    *checkout.Gate
	view    *view.Selectors
	reader  *bufio.Reader
}

// NewApp opens the local database, rehydrates persisted state, and connects
// the API client.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := store.OpenDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	bridge := store.NewBridge(db, log)

	sess := session.NewManager(bridge, log)
	sess.Restore(ctx)

	ledger := cart.NewLedger(bridge.LoadCart(ctx), bridge, log)
	gate := checkout.NewGate(sess, ledger)

	apiClient := api.NewHTTPClient(c.APIEndpointURL, sess.Token)

	return &App{
		config:  c,
		log:     log,
		auth:    apiClient,
		catalog: apiClient,
		orders:  apiClient,
		db:      db,
		ledger:  ledger,
		session: sess,
		gate:    gate,
		view:    view.NewSelectors(ledger, sess, gate),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

// Run starts the REPL and the session-expiry watcher and blocks until the
// REPL ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		a.Root(ctx)
		return nil
	})
	g.Go(func() error {
		a.startExpiryWatcher(ctx, a.config.SessionCheckInterval)
		return nil
	})

	return g.Wait()
}

// startExpiryWatcher periodically checks the session token for local expiry.
// It never mutates state itself: the REPL goroutine performs the actual
// sign-out on its next dispatch, keeping the single-writer discipline.
func (a *App) startExpiryWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.session.TokenExpired() {
				a.log.Warn(ctx, "session token expired, you will be signed out")
			}
		case <-ctx.Done():
			return
		}
	}
}

// expireIfStale runs the sign-out path when the session token expired while
// the user was idle. Called on the REPL goroutine before each dispatch.
// Expired tokens take the same path as an explicit logout, cart included.
func (a *App) expireIfStale(ctx context.Context) {
	if !a.session.TokenExpired() {
		return
	}
	a.log.Info(ctx, "session expired, signing out")
	a.signOut(ctx)
}

// signOut clears the session and, deliberately, the cart: checkout data in
// progress must not carry over to the next user of a shared device.
func (a *App) signOut(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout cleanup failed", "error", err)
	}
	if err := a.ledger.Clear(ctx); err != nil {
		a.log.Warn(ctx, "cart cleanup failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
