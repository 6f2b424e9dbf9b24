package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/services"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/store"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Stores and services are built lazily so commands that never touch the
// backend or the database do not open them.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	local     *store.LocalStore
	sess      *store.Session
	client    *services.Client
	cart      *store.SyncStore
	bookmarks *store.SyncStore
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used by the TUI to redirect logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the local store if one was opened.
func (r *Runner) Close() error {
	if r.local != nil {
		return r.local.Close()
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, filmsCommand, cartCommand, bookmarksCommand, exportCommand, adminCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// localStore opens the key-value store once, running migrations on first use.
func (r *Runner) localStore() (*store.LocalStore, error) {
	if r.local != nil {
		return r.local, nil
	}

	local, err := store.Open(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	r.local = local
	return local, nil
}

func (r *Runner) session() (*store.Session, error) {
	if r.sess != nil {
		return r.sess, nil
	}

	local, err := r.localStore()
	if err != nil {
		return nil, err
	}
	r.sess = store.NewSession(local)
	return r.sess, nil
}

// gateway builds the request gateway, attaching the stored session so
// requests carry the bearer token when one exists.
func (r *Runner) gateway() (*services.Client, error) {
	if r.client != nil {
		return r.client, nil
	}

	sess, err := r.session()
	if err != nil {
		return nil, err
	}
	r.client = services.NewClient(r.config.API.BaseURL, r.httpClient, sess)
	return r.client, nil
}

func (r *Runner) accountService() (*services.AccountService, error) {
	client, err := r.gateway()
	if err != nil {
		return nil, err
	}
	return services.NewAccountService(client), nil
}

func (r *Runner) catalogService() (*services.CatalogService, error) {
	client, err := r.gateway()
	if err != nil {
		return nil, err
	}
	return services.NewCatalogService(client), nil
}

// syncStores builds the linked cart and bookmark mirrors over the local
// store, loading the persisted snapshots.
func (r *Runner) syncStores() (*store.SyncStore, *store.SyncStore, error) {
	if r.cart != nil && r.bookmarks != nil {
		return r.cart, r.bookmarks, nil
	}

	local, err := r.localStore()
	if err != nil {
		return nil, nil, err
	}
	client, err := r.gateway()
	if err != nil {
		return nil, nil, err
	}

	cart, bookmarks := store.NewPair(local,
		services.NewCollectionAPI(client, models.KindCart),
		services.NewCollectionAPI(client, models.KindBookmarks))

	if err := cart.LoadLocal(); err != nil {
		return nil, nil, err
	}
	if err := bookmarks.LoadLocal(); err != nil {
		return nil, nil, err
	}

	r.cart, r.bookmarks = cart, bookmarks
	return cart, bookmarks, nil
}

func (r *Runner) catalogEngine() (*tasks.CatalogEngine, error) {
	catalog, err := r.catalogService()
	if err != nil {
		return nil, err
	}
	cart, bookmarks, err := r.syncStores()
	if err != nil {
		return nil, err
	}
	return tasks.NewCatalogEngine(catalog, cart, bookmarks), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
