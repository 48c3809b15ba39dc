package orderControllers

import (
	"errors"
	"strings"

	"github.com/shopsphere-dev/storefront-api/models"
)

var orderStatuses = map[models.OrderStatus]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// transitions is the forward path of the order machine. Cancelled is handled
// by CanCancel, not here, because cancellation also restores stock.
var transitions = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusPending:    models.OrderStatusProcessing,
	models.OrderStatusProcessing: models.OrderStatusShipped,
	models.OrderStatusShipped:    models.OrderStatusDelivered,
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	for s := range orderStatuses {
		if strings.EqualFold(string(s), status) {
			return s, nil
		}
	}
	return "", errors.New("invalid order status")
}

// CanTransition reports whether the status machine allows from → to.
func CanTransition(from, to models.OrderStatus) bool {
	return transitions[from] == to
}

// CanCancel reports whether an order may still be cancelled. Delivered and
// already-cancelled orders cannot.
func CanCancel(status models.OrderStatus) bool {
	return status != models.OrderStatusDelivered && status != models.OrderStatusCancelled
}
