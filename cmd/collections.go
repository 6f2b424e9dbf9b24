package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/formatter"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/store"
)

func (r *Runner) collection(kind models.CollectionKind) (*store.SyncStore, error) {
	cart, bookmarks, err := r.syncStores()
	if err != nil {
		return nil, err
	}
	if kind == models.KindBookmarks {
		return bookmarks, nil
	}
	return cart, nil
}

// CollectionShow lists the collection's entries. The server copy is
// fetched first; on failure the persisted snapshot is shown instead.
func (r *Runner) CollectionShow(kind models.CollectionKind) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		s, err := r.collection(kind)
		if err != nil {
			return err
		}

		if !cmd.Bool("local") {
			if err := s.Refresh(ctx); err != nil {
				r.logger.Warn("refresh failed, showing cached copy", "collection", kind, "error", err)
			}
		}

		items := s.Items()
		if cmd.Bool("json") {
			return r.writeJSON(items, true)
		}

		if len(items) == 0 {
			return r.writePlain("%s is empty\n", kind)
		}

		r.writePlain("%s (%d entries)\n", kind, len(items))
		for i, item := range items {
			r.writePlain("%d. %s - %s [%s]\n", i+1, formatter.FormatAuthor(item.Author), item.Title,
				formatter.FormatPrice(item.Price, r.config.UI.Currency))
		}
		return nil
	}
}

// CollectionToggle flips a film's membership by id. The record is resolved
// from the catalog so the server receives original values, not display text.
func (r *Runner) CollectionToggle(kind models.CollectionKind) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		id := cmd.StringArg("id")
		if id == "" {
			return fmt.Errorf("%w: film id", shared.ErrMissingArgument)
		}

		catalog, err := r.catalogService()
		if err != nil {
			return err
		}
		s, err := r.collection(kind)
		if err != nil {
			return err
		}

		films, err := catalog.AllFilms(ctx)
		if err != nil {
			return err
		}
		film, ok := formatter.CardIndex(films)[id]
		if !ok {
			return fmt.Errorf("%w: id %s", shared.ErrFilmNotFound, id)
		}

		// server truth first so the toggle direction is not decided by a
		// stale snapshot; a failed refresh falls back to the local copy
		if err := s.Refresh(ctx); err != nil {
			r.logger.Warn("refresh failed, toggling against cached copy", "collection", kind, "error", err)
		}

		member, err := s.Toggle(ctx, film)
		if err != nil {
			return err
		}

		if member {
			return r.writePlain("✓ %s added to %s\n", film.DisplayTitle(), kind)
		}
		return r.writePlain("✓ %s removed from %s\n", film.DisplayTitle(), kind)
	}
}

// CollectionExport writes the collection as CSV.
func (r *Runner) CollectionExport(kind models.CollectionKind) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		s, err := r.collection(kind)
		if err != nil {
			return err
		}

		if err := s.Refresh(ctx); err != nil {
			r.logger.Warn("refresh failed, exporting cached copy", "collection", kind, "error", err)
		}

		data, err := formatter.ExportCollectionToCSV(s.Items())
		if err != nil {
			return err
		}

		path := cmd.String("output")
		if path == "" {
			path = fmt.Sprintf("%s.csv", kind)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		return r.writePlain("✓ Exported %d entries to %s\n", s.Len(), path)
	}
}
