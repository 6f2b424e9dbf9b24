package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// CollectionServer is the server half a sync store talks to. Satisfied by
// [services.CollectionAPI].
type CollectionServer interface {
	Kind() models.CollectionKind
	List(ctx context.Context) ([]models.CollectionItem, error)
	Add(ctx context.Context, item models.CollectionItem) error
	Remove(ctx context.Context, movieID string) error
}

// SyncStore mirrors one server-owned membership list into local state.
// After any acknowledged toggle the mirror exactly reflects the last
// server-acknowledged membership for items toggled through this session;
// other sessions' changes appear only on the next Refresh.
type SyncStore struct {
	mu       *sync.Mutex // shared across a pair so both snapshots persist consistently
	kind     models.CollectionKind
	api      CollectionServer
	local    *LocalStore
	peer     *SyncStore
	items    []models.CollectionItem
	inflight map[string]struct{}
}

// NewPair creates the cart and bookmark stores over one local store. The
// stores are linked: every mutation of either persists both snapshots in a
// single transaction.
func NewPair(local *LocalStore, cart, bookmarks CollectionServer) (*SyncStore, *SyncStore) {
	mu := &sync.Mutex{}
	c := newSyncStore(mu, local, cart)
	b := newSyncStore(mu, local, bookmarks)
	c.peer, b.peer = b, c
	return c, b
}

func newSyncStore(mu *sync.Mutex, local *LocalStore, api CollectionServer) *SyncStore {
	return &SyncStore{
		mu:       mu,
		kind:     api.Kind(),
		api:      api,
		local:    local,
		inflight: make(map[string]struct{}),
	}
}

// Kind returns the collection this store mirrors.
func (s *SyncStore) Kind() models.CollectionKind { return s.kind }

// LoadLocal initializes the mirror from the persisted snapshot. An absent
// snapshot leaves the mirror empty; a corrupt one is an error.
func (s *SyncStore) LoadLocal() error {
	value, ok, err := s.local.Get(s.kind.String())
	if err != nil {
		return err
	}
	if !ok || value == "" {
		return nil
	}

	var items []models.CollectionItem
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return fmt.Errorf("corrupt %s snapshot: %w", s.kind, err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Refresh replaces the mirror with the server's membership list and
// persists it. On failure the existing local copy is retained untouched and
// the error is returned for logging; callers treat it as best-effort (an
// anonymous or expired session is an expected condition).
func (s *SyncStore) Refresh(ctx context.Context) error {
	items, err := s.api.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return s.persistLocked()
}

// Toggle flips the membership of the film. The server is asked first; local
// state mutates and persists only after acknowledgment, so a failed call
// leaves the mirror exactly as it was. Returns whether the film is a member
// after the toggle.
//
// A second toggle for an id whose first call has not returned yet fails
// with [shared.ErrToggleInFlight] instead of double-submitting.
func (s *SyncStore) Toggle(ctx context.Context, film models.Film) (member bool, err error) {
	key := film.Key()
	if key == "" {
		return false, fmt.Errorf("%w: film id", shared.ErrMissingArgument)
	}

	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s %s", shared.ErrToggleInFlight, s.kind, key)
	}
	s.inflight[key] = struct{}{}
	present := s.indexLocked(key) >= 0
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	if present {
		if err := s.api.Remove(ctx, key); err != nil {
			return true, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if i := s.indexLocked(key); i >= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return false, s.persistLocked()
	}

	item := film.Item()
	if err := s.api.Add(ctx, item); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// uniqueness by id is enforced here, not by the backend
	if s.indexLocked(key) < 0 {
		s.items = append(s.items, item)
	}
	return true, s.persistLocked()
}

// Contains reports membership, comparing ids as strings so numeric and
// string ids from different sources match.
func (s *SyncStore) Contains(movieID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(movieID) >= 0
}

// Items returns a copy of the current mirror in order.
func (s *SyncStore) Items() []models.CollectionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CollectionItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of entries in the mirror.
func (s *SyncStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *SyncStore) indexLocked(movieID string) int {
	for i, item := range s.items {
		if item.MovieID == movieID {
			return i
		}
	}
	return -1
}

// persistLocked writes this store's snapshot and its peer's together.
// Callers hold the pair mutex.
func (s *SyncStore) persistLocked() error {
	entries := make(map[string]string, 2)

	encoded, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", s.kind, err)
	}
	entries[s.kind.String()] = string(encoded)

	if s.peer != nil {
		peerEncoded, err := json.Marshal(s.peer.items)
		if err != nil {
			return fmt.Errorf("failed to encode %s snapshot: %w", s.peer.kind, err)
		}
		entries[s.peer.kind.String()] = string(peerEncoded)
	}

	return s.local.SetAll(entries)
}
