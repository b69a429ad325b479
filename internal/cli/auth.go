package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the auth endpoint.
//
// A failed call leaves the existing session untouched and the error is
// surfaced to the user; there is no retry. A response that arrives after the
// session changed underneath the call (stale-response guard) is discarded.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	epoch := a.session.Epoch()
	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if a.session.Epoch() != epoch {
		a.log.Warn(ctx, "discarding stale login response")
		return nil
	}

	if err := a.session.SetCredentials(ctx, user); err != nil {
		a.log.Warn(ctx, "session persisted partially", "error", err)
	}
	printlnFn(fmt.Sprintf("Welcome back, %s!", user.Name))

	if target := a.session.TakeRedirect(); target != "" {
		printlnFn("You can now continue with '" + target + "'.")
	}
	return nil
}

// Register prompts for name, email, and password and creates a new account.
// A successful registration signs the user in, same as the login path.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	epoch := a.session.Epoch()
	user, err := a.auth.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	if a.session.Epoch() != epoch {
		a.log.Warn(ctx, "discarding stale register response")
		return nil
	}

	if err := a.session.SetCredentials(ctx, user); err != nil {
		a.log.Warn(ctx, "session persisted partially", "error", err)
	}
	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", user.Name))
	return nil
}

// Logout notifies the auth endpoint best-effort and always clears the local
// session and cart.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout endpoint call failed", "error", err)
	}
	a.signOut(ctx)
	printlnFn("Signed out.")
	return nil
}

// Profile shows the server-side profile and offers an update. Empty inputs
// keep the current values; an empty password keeps the current password.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please 'login' first.")
		return nil
	}

	user, err := a.auth.GetProfile(ctx)
	if err != nil {
		return a.handleAuthError(ctx, err)
	}
	printlnFn(fmt.Sprintf("Name:  %s", user.Name))
	printlnFn(fmt.Sprintf("Email: %s", user.Email))

	answer, err := getSimpleText(a.reader, "Update profile? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	epoch := a.session.Epoch()
	updated, err := a.auth.UpdateProfile(ctx, name, email, password)
	if err != nil {
		return a.handleAuthError(ctx, err)
	}
	if a.session.Epoch() != epoch {
		a.log.Warn(ctx, "discarding stale profile response")
		return nil
	}

	// the server may rotate the token on profile changes
	if err := a.session.SetCredentials(ctx, updated); err != nil {
		a.log.Warn(ctx, "session persisted partially", "error", err)
	}
	printlnFn("Profile updated.")
	return nil
}
