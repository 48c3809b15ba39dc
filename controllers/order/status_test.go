package orderControllers

import (
	"testing"

	"github.com/shopsphere-dev/storefront-api/models"
)

func TestMapOrderStatus(t *testing.T) {
	status, err := mapOrderStatus("processing")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if status != models.OrderStatusProcessing {
		t.Errorf("Expected Processing, got %s", status)
	}

	if _, err := mapOrderStatus("teleported"); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusPending, models.OrderStatusProcessing},
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("Expected %s → %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusPending, models.OrderStatusShipped},
		{models.OrderStatusPending, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusPending},
		{models.OrderStatusDelivered, models.OrderStatusShipped},
		{models.OrderStatusCancelled, models.OrderStatusProcessing},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("Expected %s → %s to be denied", tc.from, tc.to)
		}
	}
}

func TestCanCancel(t *testing.T) {
	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
	} {
		if !CanCancel(status) {
			t.Errorf("Expected %s to be cancellable", status)
		}
	}

	for _, status := range []models.OrderStatus{
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		if CanCancel(status) {
			t.Errorf("Expected %s not to be cancellable", status)
		}
	}
}
