package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/services"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// AdminFilmAdd creates a catalog record. Requires an admin session.
func (r *Runner) AdminFilmAdd(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogService()
	if err != nil {
		return err
	}

	film := services.FilmCreate{
		Title:   cmd.String("title"),
		TitleRU: cmd.String("title-ru"),
		Author:  cmd.String("author"),
		Price:   cmd.String("price"),
		Genre:   cmd.String("genre"),
	}

	if posterPath := cmd.String("poster"); posterPath != "" {
		data, err := os.ReadFile(posterPath)
		if err != nil {
			return fmt.Errorf("failed to read poster: %w", err)
		}
		film.Poster = base64.StdEncoding.EncodeToString(data)
	}

	r.logger.Info("creating film", "title", film.Title, "genre", film.Genre)
	created, err := catalog.CreateFilm(ctx, film)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Created %s (id %s)\n", created.DisplayTitle(), created.Key())
}

// AdminFilmRemove deletes a catalog record by id.
func (r *Runner) AdminFilmRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: film id", shared.ErrMissingArgument)
	}

	catalog, err := r.catalogService()
	if err != nil {
		return err
	}

	r.logger.Info("deleting film", "id", id)
	if err := catalog.DeleteFilm(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Deleted film %s\n", id)
}
