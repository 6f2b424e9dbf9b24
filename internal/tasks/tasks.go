package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// FilmLister defines the catalog reads the engine needs.
// Satisfied by [services.CatalogService].
type FilmLister interface {
	AllFilms(ctx context.Context) ([]models.Film, error)
	FilmsByGenre(ctx context.Context, genre string) ([]models.Film, error)
}

// Collection is a refreshable server-backed membership mirror.
// Satisfied by [store.SyncStore].
type Collection interface {
	Kind() models.CollectionKind
	Refresh(ctx context.Context) error
}

// RefreshFailure records a collection refresh that did not complete.
type RefreshFailure struct {
	Kind  models.CollectionKind
	Error error
}

// LoadResult contains all data from an initial load.
type LoadResult struct {
	Films           []models.Film    // Full catalog listing
	RefreshFailures []RefreshFailure // Collections whose refresh failed; their cached mirrors remain valid
}

// CatalogEngine runs catalog loads and exports against the backend.
type CatalogEngine struct {
	catalog   FilmLister
	cart      Collection
	bookmarks Collection
}

// NewCatalogEngine creates a CatalogEngine over the catalog service and the
// two collection mirrors. Either collection may be nil (anonymous session);
// its refresh is then skipped.
func NewCatalogEngine(catalog FilmLister, cart, bookmarks Collection) *CatalogEngine {
	return &CatalogEngine{
		catalog:   catalog,
		cart:      cart,
		bookmarks: bookmarks,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Load performs the initial load: the film listing plus both collection
// refreshes, concurrently. The listing is required; a failed refresh is
// recorded in the result so the caller can keep showing the cached mirror.
func (e *CatalogEngine) Load(ctx context.Context, progress chan<- ProgressUpdate) (*LoadResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	result := &LoadResult{}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		filmsErr error
	)

	e.sendProgress(progress, fetchingFilmsUpdate())

	wg.Add(1)
	go func() {
		defer wg.Done()
		films, err := e.catalog.AllFilms(ctx)
		if err != nil {
			filmsErr = err
			return
		}
		result.Films = films
		e.sendProgress(progress, filmsLoadedUpdate(len(films)))
	}()

	refresh := func(c Collection, phase Phase) {
		defer wg.Done()
		e.sendProgress(progress, refreshingUpdate(phase, c.Kind()))
		if err := c.Refresh(ctx); err != nil {
			mu.Lock()
			result.RefreshFailures = append(result.RefreshFailures, RefreshFailure{Kind: c.Kind(), Error: err})
			mu.Unlock()
			e.sendProgress(progress, refreshFailedUpdate(phase, c.Kind(), err))
		}
	}

	if e.cart != nil {
		wg.Add(1)
		go refresh(e.cart, FetchCart)
	}
	if e.bookmarks != nil {
		wg.Add(1)
		go refresh(e.bookmarks, FetchBookmarks)
	}

	wg.Wait()

	if filmsErr != nil {
		return nil, fmt.Errorf("%w: failed to fetch films: %v", shared.ErrAPIRequest, filmsErr)
	}
	return result, nil
}
