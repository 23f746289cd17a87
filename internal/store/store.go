package store

import (
    "context"
    "log"
    "sync"

    "github.com/worapol/banquet-booking/internal/model"
)

// Remote abstracts the sheet API so the store can be tested against an
// httptest server or a stub.
type Remote interface {
    ListBookings(ctx context.Context) ([]model.Booking, error)
    Submit(ctx context.Context, action Action, b model.Booking) error
}

// Reducer transforms the current booking collection into a new one and
// returns the booking the transition touched.  Reducers run under the
// store's write lock so id allocation stays race-free.
type Reducer func(bookings []model.Booking) ([]model.Booking, model.Booking, error)

// Store holds the authoritative in-memory booking collection and mirrors
// it to the snapshot cache and the remote sheet.  All mutations go through
// Update, which replaces the whole collection value; nothing outside the
// store ever sees a partial mutation.
type Store struct {
    mu       sync.RWMutex
    bookings []model.Booking

    remote Remote
    cache  SnapshotCache
}

// New builds a Store.  A nil cache is replaced with NopSnapshot.
func New(remote Remote, cache SnapshotCache) *Store {
    if cache == nil {
        cache = NopSnapshot{}
    }
    return &Store{remote: remote, cache: cache}
}

// Load initialises the collection at startup: remote first, then the
// cached snapshot, then empty.  The returned error is informational — it
// reports that the store is running degraded, but the collection is usable
// either way.
func (s *Store) Load(ctx context.Context) error {
    bookings, err := s.remote.ListBookings(ctx)
    if err == nil {
        s.replace(bookings)
        if cerr := s.cache.Save(ctx, bookings); cerr != nil {
            log.Printf("store: snapshot save failed: %v", cerr)
        }
        return nil
    }

    cached, cerr := s.cache.Load(ctx)
    if cerr != nil {
        s.replace([]model.Booking{})
        return err
    }
    s.replace(cached)
    return err
}

// Bookings returns a copy of the current collection.
func (s *Store) Bookings() []model.Booking {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Booking, len(s.bookings))
    copy(out, s.bookings)
    return out
}

// Find returns the booking with the given id.
func (s *Store) Find(id string) (model.Booking, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, b := range s.bookings {
        if b.ID == id {
            return b, true
        }
    }
    return model.Booking{}, false
}

// Update runs a reducer against the collection and commits the result.
// The local swap and the snapshot write always happen; the remote submit
// is a single attempt afterwards and its failure comes back as a warning
// string instead of an error, so callers can tell the user "saved locally"
// without rolling anything back.  The snapshot write stays under the lock
// so concurrent updates cannot persist snapshots out of order.
func (s *Store) Update(ctx context.Context, action Action, reduce Reducer) (model.Booking, string, error) {
    s.mu.Lock()
    next, changed, err := reduce(s.bookings)
    if err != nil {
        s.mu.Unlock()
        return model.Booking{}, "", err
    }
    s.bookings = next
    if cerr := s.cache.Save(ctx, next); cerr != nil {
        log.Printf("store: snapshot save failed: %v", cerr)
    }
    s.mu.Unlock()

    warning := ""
    if rerr := s.remote.Submit(ctx, action, changed); rerr != nil {
        log.Printf("store: remote %s for %s failed: %v", action, changed.ID, rerr)
        warning = "saved locally, booking database unreachable"
    }
    return changed, warning, nil
}

func (s *Store) replace(bookings []model.Booking) {
    s.mu.Lock()
    s.bookings = bookings
    s.mu.Unlock()
}
