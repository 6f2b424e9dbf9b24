// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
)

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local store and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the account and session",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.StringFlag{Name: "confirm", Usage: "Password confirmation (defaults to --password)"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and store the issued token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.BoolFlag{Name: "open", Usage: "Open the storefront landing page after login", Value: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:  "me",
				Usage: "Show the authenticated account",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.AuthMe,
			},
			{
				Name:  "password",
				Usage: "Change the account password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "current", Usage: "Current password", Required: true},
					&cli.StringFlag{Name: "new", Usage: "New password", Required: true},
				},
				Action: r.AuthPassword,
			},
			{
				Name:  "avatar",
				Usage: "Upload an avatar image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.AuthAvatar,
			},
			{
				Name:   "status",
				Usage:  "Check backend health and session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// filmsCommand handles catalog reads
func filmsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "films",
		Usage: "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List films as rendered cards",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "sort",
						Aliases: []string{"s"},
						Usage:   "Sort field: title, author or price",
					},
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Restrict the listing to one genre",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FilmsList,
			},
			{
				Name:  "random",
				Usage: "Show a random selection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "count"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FilmsRandom,
			},
		},
	}
}

// cartCommand handles the cart collection
func cartCommand(r *Runner) *cli.Command {
	return collectionCommand(r, models.KindCart, "Manage the cart")
}

// bookmarksCommand handles the bookmark collection
func bookmarksCommand(r *Runner) *cli.Command {
	return collectionCommand(r, models.KindBookmarks, "Manage bookmarks")
}

func collectionCommand(r *Runner, kind models.CollectionKind, usage string) *cli.Command {
	return &cli.Command{
		Name:  kind.String(),
		Usage: usage,
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "List the collection's entries",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "local", Usage: "Skip the server refresh, show the cached copy"},
				},
				Action: r.CollectionShow(kind),
			},
			{
				Name:  "toggle",
				Usage: "Flip a film's membership",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CollectionToggle(kind),
			},
			{
				Name:  "export",
				Usage: "Export the collection as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.CollectionExport(kind),
			},
		},
	}
}

// exportCommand handles bulk catalog exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Bulk export operations",
		Commands: []*cli.Command{
			{
				Name:  "genres",
				Usage: "Export each genre's listing to files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "genre",
						Aliases:  []string{"g"},
						Usage:    "Genre to export (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, txt",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Backend requests per second",
						Value: 5,
					},
				},
				Action: r.ExportGenres,
			},
		},
	}
}

// adminCommand handles catalog administration
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Catalog administration (requires an admin account)",
		Commands: []*cli.Command{
			{
				Name:  "films",
				Usage: "Manage catalog records",
				Commands: []*cli.Command{
					{
						Name:  "add",
						Usage: "Create a catalog record",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Usage: "Film title", Required: true},
							&cli.StringFlag{Name: "title-ru", Usage: "Localized title"},
							&cli.StringFlag{Name: "author", Usage: "Film author"},
							&cli.StringFlag{Name: "price", Usage: "Film price"},
							&cli.StringFlag{Name: "genre", Usage: "Genre title", Required: true},
							&cli.StringFlag{Name: "poster", Usage: "Path to poster image (stored base64-encoded)"},
						},
						Action: r.AdminFilmAdd,
					},
					{
						Name:  "remove",
						Usage: "Delete a catalog record",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "id"},
						},
						Action: r.AdminFilmRemove,
					},
				},
			},
		},
	}
}

// apiCommand handles direct backend calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET under the versioned prefix, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive storefront",
		Action:  r.TUI,
	}
}
