package state

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"shoplist-server/core"
	"shoplist-server/metrics"
	"shoplist-server/stores"

	"github.com/sirupsen/logrus"
)

// DefaultFlushDelay is the debounce window for coalesced persistence.
const DefaultFlushDelay = 500 * time.Millisecond

// Store is the single owner of all mutable entity state. Every mutation
// passes through Mutate, which holds an exclusive lock for the duration of
// the mutation closure, so concurrent writers are applied as if fully
// ordered and readers never observe a half-applied cascade.
//
// Persistence is decoupled from the request path: a committed mutation only
// schedules a flush, and rapid mutations within the debounce window collapse
// into a single write of the then-current state.
type Store struct {
	mu   sync.RWMutex
	snap *core.Snapshot

	backend    stores.Backend
	flushDelay time.Duration

	timerMu sync.Mutex
	pending bool
}

// Option configures a Store.
type Option func(*Store)

// WithFlushDelay overrides the persistence debounce window.
func WithFlushDelay(d time.Duration) Option {
	return func(s *Store) {
		s.flushDelay = d
	}
}

// New creates a Store over the given snapshot backend. Call Load before
// serving anything.
func New(backend stores.Backend, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		flushDelay: DefaultFlushDelay,
		snap:       core.NewSnapshot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores entity collections from the last durable snapshot, falling
// back to the seed snapshot when none exists, or to an empty state when
// there is no seed either. It then writes the state back once, so an
// unwritable backend fails here rather than silently later; that failure is
// fatal at startup.
func (s *Store) Load(ctx context.Context, seed *core.Snapshot) error {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}

	snap := core.NewSnapshot()
	switch {
	case data != nil:
		if err := json.Unmarshal(data, snap); err != nil {
			return err
		}
		snap.Normalize()
		logrus.WithFields(logrus.Fields{
			"users": len(snap.Users),
			"lists": len(snap.ShopLists),
			"items": len(snap.Items),
		}).Info("State restored from snapshot")
	case seed != nil:
		snap = seed
		snap.Normalize()
		logrus.WithField("products", len(snap.Products)).Info("State initialized from seed")
	default:
		logrus.Info("State initialized empty")
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	// Verifies the backend is writable while startup can still abort.
	return s.Flush(ctx)
}

// Read runs fn against a consistent view of the full entity set. The
// closure must not retain or mutate anything it is handed.
func (s *Store) Read(fn func(snap *core.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

// Mutate applies fn against the live entity set under the exclusive lock.
// When fn returns nil the mutation is committed and a coalesced flush is
// scheduled; when it returns an error the caller sees the error and nothing
// is persisted (the closure must not leave partial edits behind on error).
func (s *Store) Mutate(fn func(snap *core.Snapshot) error) error {
	s.mu.Lock()
	err := fn(s.snap)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	metrics.MutationsTotal.Inc()
	s.schedulePersist()
	return nil
}

// schedulePersist arms the debounce timer. Triggers while a flush is
// already pending are absorbed, not queued.
func (s *Store) schedulePersist() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.pending {
		return
	}
	s.pending = true
	time.AfterFunc(s.flushDelay, s.flushScheduled)
}

func (s *Store) flushScheduled() {
	s.timerMu.Lock()
	s.pending = false
	s.timerMu.Unlock()

	if err := s.Flush(context.Background()); err != nil {
		// Never fails the mutations that triggered it; the write is
		// retried on the next cycle.
		logrus.WithError(err).Error("Scheduled snapshot write failed, will retry")
		metrics.SnapshotSaveFailuresTotal.Inc()
		s.schedulePersist()
	}
}

// Flush synchronously writes the current full state to the backend. Used by
// the persistence cycle and for the final write on shutdown.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.Marshal(s.snap)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := s.backend.Save(ctx, data); err != nil {
		return err
	}
	metrics.SnapshotSavesTotal.Inc()
	return nil
}
