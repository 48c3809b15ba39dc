package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopsphere-dev/storefront-api/models"
)

func TestMemorySnapshotStore_SaveLoad(t *testing.T) {
	s := NewMemorySnapshotStore()
	ctx := context.Background()

	snap := CheckoutSnapshot{
		UserID: "user1",
		Items: []models.CartItem{
			{ProductID: 1, ProductPrice: 100, Quantity: 2},
		},
		Subtotal:  200,
		CreatedAt: time.Now(),
	}

	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got, err := s.Load(ctx, "user1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Subtotal != 200 || len(got.Items) != 1 {
		t.Errorf("Loaded snapshot does not match saved one: %+v", got)
	}
}

func TestMemorySnapshotStore_NotFound(t *testing.T) {
	s := NewMemorySnapshotStore()

	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got: %v", err)
	}
}

func TestMemorySnapshotStore_Delete(t *testing.T) {
	s := NewMemorySnapshotStore()
	ctx := context.Background()

	s.Save(ctx, CheckoutSnapshot{UserID: "user1", CreatedAt: time.Now()})
	if err := s.Delete(ctx, "user1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := s.Load(ctx, "user1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound after delete, got: %v", err)
	}
}

func TestMemorySnapshotStore_Expiry(t *testing.T) {
	s := NewMemorySnapshotStore()
	ctx := context.Background()

	s.Save(ctx, CheckoutSnapshot{
		UserID:    "user1",
		CreatedAt: time.Now().Add(-SnapshotTTL - time.Minute),
	})

	if _, err := s.Load(ctx, "user1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Expected expired snapshot to be gone, got: %v", err)
	}

	// Sweep drops it from the map entirely
	s.Sweep()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snaps) != 0 {
		t.Errorf("Expected sweep to remove expired snapshots, %d left", len(s.snaps))
	}
}

func TestMemorySnapshotStore_Replace(t *testing.T) {
	s := NewMemorySnapshotStore()
	ctx := context.Background()

	s.Save(ctx, CheckoutSnapshot{UserID: "user1", Subtotal: 100, CreatedAt: time.Now()})
	s.Save(ctx, CheckoutSnapshot{UserID: "user1", Subtotal: 250, CreatedAt: time.Now()})

	got, err := s.Load(ctx, "user1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Subtotal != 250 {
		t.Errorf("Expected latest snapshot to win, got subtotal %v", got.Subtotal)
	}
}
