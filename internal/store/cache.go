package store

import (
    "context"
    "encoding/json"
    "errors"

    "github.com/redis/go-redis/v9"

    "github.com/worapol/banquet-booking/internal/model"
)

// ErrNoSnapshot is returned by Load when no snapshot has been written yet.
var ErrNoSnapshot = errors.New("no booking snapshot")

// SnapshotCache persists the full booking list as a single value.  It is
// overwritten after every local mutation and read once at startup when the
// sheet API cannot be reached.
type SnapshotCache interface {
    Save(ctx context.Context, bookings []model.Booking) error
    Load(ctx context.Context) ([]model.Booking, error)
}

const snapshotKey = "bookings:snapshot"

// RedisSnapshot stores the snapshot under a fixed key with no expiry: a
// stale fallback beats no fallback.
type RedisSnapshot struct {
    rdb *redis.Client
}

// NewRedisSnapshot wraps an existing Redis client.
func NewRedisSnapshot(rdb *redis.Client) *RedisSnapshot {
    return &RedisSnapshot{rdb: rdb}
}

func (s *RedisSnapshot) Save(ctx context.Context, bookings []model.Booking) error {
    data, err := json.Marshal(bookings)
    if err != nil {
        return err
    }
    return s.rdb.Set(ctx, snapshotKey, data, 0).Err()
}

func (s *RedisSnapshot) Load(ctx context.Context) ([]model.Booking, error) {
    data, err := s.rdb.Get(ctx, snapshotKey).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, ErrNoSnapshot
    }
    if err != nil {
        return nil, err
    }
    var bookings []model.Booking
    if err := json.Unmarshal(data, &bookings); err != nil {
        return nil, err
    }
    return bookings, nil
}

// NopSnapshot is used when Redis is not available at startup.  Saves are
// discarded and loads report an empty cache, so the service still runs on
// in-memory state alone.
type NopSnapshot struct{}

func (NopSnapshot) Save(ctx context.Context, bookings []model.Booking) error { return nil }
func (NopSnapshot) Load(ctx context.Context) ([]model.Booking, error)        { return nil, ErrNoSnapshot }
