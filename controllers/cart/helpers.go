package cartControllers

import (
	"errors"
	"fmt"

	"github.com/shopsphere-dev/storefront-api/models"
)

// ErrStockExceeded rejects a quantity change that would outgrow the
// product's current stock. Handlers map it to 409.
var ErrStockExceeded = errors.New("stock exceeded")

// Subtotal returns the cart total as Σ(price × quantity).
func Subtotal(items []models.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.ProductPrice * float64(item.Quantity)
	}
	return sum
}

// TotalItems returns the unit count across all lines.
func TotalItems(items []models.CartItem) int {
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// FindItem returns the index of the line for productID, or -1.
func FindItem(items []models.CartItem, productID uint) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IncreaseQuantity computes the next quantity for a line, checked against
// the product's current stock.
func IncreaseQuantity(current, stock int) (int, error) {
	if current+1 > stock {
		return current, fmt.Errorf("%w: only %d in stock", ErrStockExceeded, stock)
	}
	return current + 1, nil
}

// DecreaseQuantity computes the next quantity for a line. When the quantity
// is already 1 the line is removed instead; zero is never a stored quantity.
func DecreaseQuantity(current int) (next int, remove bool) {
	if current <= 1 {
		return 0, true
	}
	return current - 1, false
}
