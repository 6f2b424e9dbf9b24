package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/ui"
)

// TUI launches the interactive terminal storefront.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	account, err := r.accountService()
	if err != nil {
		return err
	}
	sess, err := r.session()
	if err != nil {
		return err
	}
	cart, bookmarks, err := r.syncStores()
	if err != nil {
		return err
	}
	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/videoteka-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.Opts{
		Account:    account,
		Engine:     engine,
		Session:    sess,
		Cart:       cart,
		Bookmarks:  bookmarks,
		LandingURL: r.config.API.LandingURL,
		Currency:   r.config.UI.Currency,
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
