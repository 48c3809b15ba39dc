package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopsphere-dev/storefront-api/models"
)

// ErrSnapshotNotFound is returned when no checkout is in progress for a user.
var ErrSnapshotNotFound = errors.New("checkout snapshot not found")

// SnapshotTTL bounds how long an abandoned checkout survives.
const SnapshotTTL = 30 * time.Minute

// CheckoutSnapshot is the cart copy captured when the user enters checkout.
// It bridges the payment and shipping steps so the commit works from the
// prices and quantities the user saw, not from a cart that may have changed
// underneath.
type CheckoutSnapshot struct {
	UserID    string            `json:"user_id"`
	Items     []models.CartItem `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	CreatedAt time.Time         `json:"created_at"`
}

// SnapshotStore holds at most one in-progress checkout per user.
type SnapshotStore interface {
	Save(ctx context.Context, snap CheckoutSnapshot) error
	Load(ctx context.Context, userID string) (CheckoutSnapshot, error)
	Delete(ctx context.Context, userID string) error
}

// ---------------- Redis-backed store ----------------

type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func snapshotKey(userID string) string {
	return "checkout:snapshot:" + userID
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap CheckoutSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKey(snap.UserID), data, SnapshotTTL).Err()
}

func (s *RedisSnapshotStore) Load(ctx context.Context, userID string) (CheckoutSnapshot, error) {
	var snap CheckoutSnapshot
	data, err := s.client.Get(ctx, snapshotKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, ErrSnapshotNotFound
	}
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, snapshotKey(userID)).Err()
}

// ---------------- In-memory store ----------------

// MemorySnapshotStore backs deployments without Redis and the test suite.
type MemorySnapshotStore struct {
	mu    sync.Mutex
	snaps map[string]CheckoutSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{snaps: make(map[string]CheckoutSnapshot)}
}

func (s *MemorySnapshotStore) Save(_ context.Context, snap CheckoutSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.UserID] = snap
	return nil
}

func (s *MemorySnapshotStore) Load(_ context.Context, userID string) (CheckoutSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[userID]
	if !ok || time.Since(snap.CreatedAt) > SnapshotTTL {
		return CheckoutSnapshot{}, ErrSnapshotNotFound
	}
	return snap, nil
}

func (s *MemorySnapshotStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, userID)
	return nil
}

// Sweep drops expired snapshots. Redis expires keys itself; the memory store
// needs a periodic call from main.
func (s *MemorySnapshotStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, snap := range s.snaps {
		if time.Since(snap.CreatedAt) > SnapshotTTL {
			delete(s.snaps, userID)
		}
	}
}
