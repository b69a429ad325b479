package cli

import (
	"context"
	"errors"

	"storefront/internal/api"
)

// handleAuthError routes an expired-token response through the same
// session-clearing path as an explicit logout. Everything else is passed up
// to be shown to the user.
func (a *App) handleAuthError(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrTokenExpired) {
		printlnFn("Your session has expired. Please sign in again.")
		a.signOut(ctx)
		return nil
	}
	return err
}
