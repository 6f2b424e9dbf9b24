package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// AuthRegister creates an account. The confirmation defaults to the
// password so scripted use does not have to repeat it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email := cmd.String("email")
	password := cmd.String("password")
	confirm := cmd.String("confirm")
	if confirm == "" {
		confirm = password
	}

	account, err := r.accountService()
	if err != nil {
		return err
	}

	r.logger.Info("registering account", "username", username)
	if err := account.Register(ctx, username, email, password, confirm); err != nil {
		return err
	}

	return r.writePlain("✓ Account created, log in with 'auth login'\n")
}

// AuthLogin exchanges credentials for a token, persists it for later
// requests, and opens the storefront landing page.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	account, err := r.accountService()
	if err != nil {
		return err
	}
	sess, err := r.session()
	if err != nil {
		return err
	}

	r.logger.Info("logging in", "username", username)
	token, err := account.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := sess.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	if cmd.Bool("open") && r.config.API.LandingURL != "" {
		if err := shared.OpenBrowser(r.config.API.LandingURL); err != nil {
			r.logger.Warn("failed to open landing page", "error", err)
		}
	}

	return r.writePlain("✓ Logged in as %s\n", username)
}

// requireToken fails fast for account-scoped commands when no token is
// stored, sparing the backend a guaranteed 401.
func (r *Runner) requireToken() error {
	sess, err := r.session()
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return fmt.Errorf("%w: run 'auth login' first", shared.ErrNoToken)
	}
	return nil
}

// AuthLogout discards the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}

	if err := sess.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthMe shows the authenticated account.
func (r *Runner) AuthMe(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireToken(); err != nil {
		return err
	}

	account, err := r.accountService()
	if err != nil {
		return err
	}

	user, err := account.Me(ctx)
	if err != nil {
		return err
	}
	return r.writeJSON(user, cmd.Bool("pretty"))
}

// AuthPassword changes the account password.
func (r *Runner) AuthPassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireToken(); err != nil {
		return err
	}

	account, err := r.accountService()
	if err != nil {
		return err
	}

	if err := account.ChangePassword(ctx, cmd.String("current"), cmd.String("new")); err != nil {
		return err
	}
	return r.writePlain("✓ Password changed\n")
}

// AuthAvatar uploads an avatar image, stored base64-encoded.
func (r *Runner) AuthAvatar(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: image path", shared.ErrMissingArgument)
	}
	if err := r.requireToken(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	account, err := r.accountService()
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if _, err := account.UpdateAvatar(ctx, encoded); err != nil {
		return err
	}
	return r.writePlain("✓ Avatar updated (%d bytes)\n", len(data))
}

// AuthStatus checks backend health and reports the session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking backend health")

	catalog, err := r.catalogService()
	if err != nil {
		return err
	}
	sess, err := r.session()
	if err != nil {
		return err
	}

	health, err := catalog.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	status := "unknown"
	if s, ok := health["status"].(string); ok {
		status = s
	}

	r.writePlain("✓ Service is healthy\n")
	r.writePlain("Status: %s\n", status)
	if sess.Authenticated() {
		r.writePlain("Session: ✓ token stored\n")
	} else {
		r.writePlain("Session: ✗ anonymous\n")
	}
	return nil
}
