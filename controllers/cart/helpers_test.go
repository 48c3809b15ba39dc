package cartControllers

import (
	"errors"
	"testing"

	"github.com/shopsphere-dev/storefront-api/models"
)

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, ProductPrice: 100, Quantity: 2},
		{ProductID: 2, ProductPrice: 50, Quantity: 1},
	}

	if got := Subtotal(items); got != 250 {
		t.Errorf("Expected subtotal 250, got %v", got)
	}
}

func TestSubtotal_Empty(t *testing.T) {
	if got := Subtotal(nil); got != 0 {
		t.Errorf("Expected subtotal 0 for empty cart, got %v", got)
	}
}

func TestTotalItems(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}

	if got := TotalItems(items); got != 5 {
		t.Errorf("Expected 5 total items, got %d", got)
	}
}

func TestFindItem(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 7},
		{ProductID: 9},
	}

	if idx := FindItem(items, 9); idx != 1 {
		t.Errorf("Expected index 1, got %d", idx)
	}
	if idx := FindItem(items, 42); idx != -1 {
		t.Errorf("Expected -1 for missing product, got %d", idx)
	}
}

func TestIncreaseQuantity_WithinStock(t *testing.T) {
	// stock 5, qty 2 → 3
	next, err := IncreaseQuantity(2, 5)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if next != 3 {
		t.Errorf("Expected quantity 3, got %d", next)
	}
}

func TestIncreaseQuantity_UpToStock(t *testing.T) {
	next, err := IncreaseQuantity(4, 5)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if next != 5 {
		t.Errorf("Expected quantity 5, got %d", next)
	}
}

func TestIncreaseQuantity_StockExceeded(t *testing.T) {
	// qty already at stock: rejected, quantity unchanged
	next, err := IncreaseQuantity(5, 5)
	if err == nil {
		t.Fatal("Expected stock-exceeded error")
	}
	if !errors.Is(err, ErrStockExceeded) {
		t.Errorf("Expected ErrStockExceeded, got: %v", err)
	}
	if next != 5 {
		t.Errorf("Expected quantity to remain 5, got %d", next)
	}
}

func TestDecreaseQuantity(t *testing.T) {
	next, remove := DecreaseQuantity(3)
	if remove {
		t.Error("Expected no removal at quantity 3")
	}
	if next != 2 {
		t.Errorf("Expected quantity 2, got %d", next)
	}
}

func TestDecreaseQuantity_RemovesAtOne(t *testing.T) {
	// Decreasing a quantity-1 line removes it; zero never persists.
	_, remove := DecreaseQuantity(1)
	if !remove {
		t.Error("Expected removal at quantity 1")
	}
}
