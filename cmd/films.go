package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/formatter"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
)

// FilmsList prints the catalog listing, optionally restricted to a genre
// and sorted. Sorting happens client-side over the fetched list.
func (r *Runner) FilmsList(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogService()
	if err != nil {
		return err
	}

	var films []models.Film
	if genre := cmd.String("genre"); genre != "" {
		films, err = catalog.FilmsByGenre(ctx, genre)
	} else {
		films, err = catalog.AllFilms(ctx)
	}
	if err != nil {
		return err
	}

	if sortName := cmd.String("sort"); sortName != "" {
		field, err := models.ParseSortField(sortName)
		if err != nil {
			return err
		}
		films = formatter.SortFilms(films, field)
	}

	if cmd.Bool("json") {
		return r.writeJSON(films, cmd.Bool("pretty"))
	}

	cart, bookmarks, err := r.syncStores()
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", formatter.RenderCards(films, r.config.UI.Currency, cart, bookmarks))
}

// FilmsRandom prints a random selection from the catalog.
func (r *Runner) FilmsRandom(ctx context.Context, cmd *cli.Command) error {
	count := 4
	if arg := cmd.StringArg("count"); arg != "" {
		parsed, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", arg, err)
		}
		count = parsed
	}

	catalog, err := r.catalogService()
	if err != nil {
		return err
	}

	films, err := catalog.RandomFilms(ctx, count)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(films, true)
	}

	cart, bookmarks, err := r.syncStores()
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", formatter.RenderCards(films, r.config.UI.Currency, cart, bookmarks))
}
