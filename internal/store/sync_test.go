package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// fakeServer is an in-memory CollectionServer double.
type fakeServer struct {
	mu    sync.Mutex
	kind  models.CollectionKind
	items []models.CollectionItem

	listErr, addErr, removeErr error
	addCalls, removeCalls      int

	// when non-nil, Add signals addEntered and blocks until addGate closes
	addGate    chan struct{}
	addEntered chan struct{}
}

func (f *fakeServer) Kind() models.CollectionKind { return f.kind }

func (f *fakeServer) List(ctx context.Context) ([]models.CollectionItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.CollectionItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeServer) Add(ctx context.Context, item models.CollectionItem) error {
	f.mu.Lock()
	gate := f.addGate
	f.addCalls++
	if f.addErr != nil {
		f.mu.Unlock()
		return f.addErr
	}
	f.mu.Unlock()

	if gate != nil {
		f.addEntered <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	f.items = append(f.items, item)
	f.mu.Unlock()
	return nil
}

func (f *fakeServer) Remove(ctx context.Context, movieID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	for i, item := range f.items {
		if item.MovieID == movieID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func newTestPair(t *testing.T) (*SyncStore, *SyncStore, *fakeServer, *fakeServer, *LocalStore) {
	t.Helper()
	local := newTestStore(t)
	cartAPI := &fakeServer{kind: models.KindCart}
	marksAPI := &fakeServer{kind: models.KindBookmarks}
	cart, marks := NewPair(local, cartAPI, marksAPI)
	return cart, marks, cartAPI, marksAPI, local
}

func testFilm(id, title string) models.Film {
	return models.Film{FlimID: models.FlexString(id), Title: title, Author: "A. Author", Price: "100"}
}

func TestSyncStoreToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle-on adds exactly one entry", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)

		member, err := cart.Toggle(ctx, testFilm("7", "Dune"))
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if !member {
			t.Error("expected membership after toggle-on")
		}
		if cart.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", cart.Len())
		}
		if !cart.Contains("7") {
			t.Error("expected mirror to contain the film")
		}
		if cartAPI.addCalls != 1 {
			t.Errorf("expected 1 add call, got %d", cartAPI.addCalls)
		}
	})

	t.Run("toggle-off removes the entry", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)
		film := testFilm("7", "Dune")

		cart.Toggle(ctx, film)
		member, err := cart.Toggle(ctx, film)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if member {
			t.Error("expected no membership after toggle-off")
		}
		if cart.Len() != 0 {
			t.Errorf("expected empty mirror, got %d entries", cart.Len())
		}
		if cartAPI.removeCalls != 1 {
			t.Errorf("expected 1 remove call, got %d", cartAPI.removeCalls)
		}
	})

	t.Run("failed add leaves the mirror untouched", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)
		cartAPI.addErr = errors.New("boom")

		member, err := cart.Toggle(ctx, testFilm("7", "Dune"))
		if err == nil {
			t.Fatal("expected error")
		}
		if member {
			t.Error("expected no membership after failed add")
		}
		if cart.Len() != 0 {
			t.Errorf("expected empty mirror, got %d entries", cart.Len())
		}
	})

	t.Run("failed remove keeps the entry", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)
		film := testFilm("7", "Dune")

		cart.Toggle(ctx, film)
		cartAPI.removeErr = errors.New("boom")

		member, err := cart.Toggle(ctx, film)
		if err == nil {
			t.Fatal("expected error")
		}
		if !member || !cart.Contains("7") {
			t.Error("expected membership retained after failed remove")
		}
	})

	t.Run("empty film id is rejected", func(t *testing.T) {
		cart, _, _, _, _ := newTestPair(t)

		if _, err := cart.Toggle(ctx, models.Film{Title: "Nameless"}); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("second toggle while the first is in flight fails fast", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)
		gate := make(chan struct{})
		cartAPI.addGate = gate
		cartAPI.addEntered = make(chan struct{})

		done := make(chan error, 1)
		go func() {
			_, err := cart.Toggle(ctx, testFilm("7", "Dune"))
			done <- err
		}()

		<-cartAPI.addEntered

		if _, err := cart.Toggle(ctx, testFilm("7", "Dune")); !errors.Is(err, shared.ErrToggleInFlight) {
			t.Errorf("expected ErrToggleInFlight, got %v", err)
		}

		close(gate)
		if err := <-done; err != nil {
			t.Fatalf("first toggle failed: %v", err)
		}

		// the guard clears once the first call returns
		if _, err := cart.Toggle(ctx, testFilm("7", "Dune")); err != nil {
			t.Errorf("toggle after completion failed: %v", err)
		}
	})

	t.Run("collections toggle independently", func(t *testing.T) {
		cart, marks, _, _, _ := newTestPair(t)
		film := testFilm("7", "Dune")

		cart.Toggle(ctx, film)
		marks.Toggle(ctx, film)
		cart.Toggle(ctx, film)

		if cart.Contains("7") {
			t.Error("expected film removed from cart")
		}
		if !marks.Contains("7") {
			t.Error("expected film retained in bookmarks")
		}
	})
}

func TestSyncStorePersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle persists both snapshots", func(t *testing.T) {
		cart, marks, _, _, local := newTestPair(t)

		marks.Toggle(ctx, testFilm("3", "Solaris"))
		cart.Toggle(ctx, testFilm("7", "Dune"))

		cart2, marks2 := NewPair(local, &fakeServer{kind: models.KindCart}, &fakeServer{kind: models.KindBookmarks})
		if err := cart2.LoadLocal(); err != nil {
			t.Fatalf("LoadLocal failed: %v", err)
		}
		if err := marks2.LoadLocal(); err != nil {
			t.Fatalf("LoadLocal failed: %v", err)
		}

		if !cart2.Contains("7") || cart2.Len() != 1 {
			t.Errorf("unexpected restored cart: %+v", cart2.Items())
		}
		if !marks2.Contains("3") || marks2.Len() != 1 {
			t.Errorf("unexpected restored bookmarks: %+v", marks2.Items())
		}
	})

	t.Run("LoadLocal with no snapshot leaves the mirror empty", func(t *testing.T) {
		cart, _, _, _, _ := newTestPair(t)

		if err := cart.LoadLocal(); err != nil {
			t.Fatalf("LoadLocal failed: %v", err)
		}
		if cart.Len() != 0 {
			t.Errorf("expected empty mirror, got %d entries", cart.Len())
		}
	})

	t.Run("LoadLocal rejects a corrupt snapshot", func(t *testing.T) {
		cart, _, _, _, local := newTestPair(t)
		local.Set("cart", "{not json")

		if err := cart.LoadLocal(); err == nil {
			t.Error("expected error for corrupt snapshot")
		}
	})
}

func TestSyncStoreRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the mirror with the server list", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)
		cartAPI.items = []models.CollectionItem{
			{MovieID: "1", Title: "Stalker"},
			{MovieID: "2", Title: "Mirror"},
		}

		if err := cart.Refresh(ctx); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if cart.Len() != 2 || !cart.Contains("1") || !cart.Contains("2") {
			t.Errorf("unexpected mirror: %+v", cart.Items())
		}
	})

	t.Run("failure retains the local copy", func(t *testing.T) {
		cart, _, cartAPI, _, _ := newTestPair(t)
		cart.Toggle(ctx, testFilm("7", "Dune"))
		cartAPI.listErr = errors.New("401")

		if err := cart.Refresh(ctx); err == nil {
			t.Fatal("expected error")
		}
		if !cart.Contains("7") {
			t.Error("expected mirror retained after failed refresh")
		}
	})

	t.Run("refresh persists the new snapshot", func(t *testing.T) {
		cart, _, cartAPI, _, local := newTestPair(t)
		cartAPI.items = []models.CollectionItem{{MovieID: "1", Title: "Stalker"}}

		cart.Refresh(ctx)

		value, ok, _ := local.Get("cart")
		if !ok || value == "" || value == "[]" {
			t.Errorf("expected persisted snapshot, got %q", value)
		}
	})
}
