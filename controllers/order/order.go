package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartControllers "github.com/shopsphere-dev/storefront-api/controllers/cart"
	"github.com/shopsphere-dev/storefront-api/models"
	"github.com/shopsphere-dev/storefront-api/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")

	errInvalidTransition = errors.New("invalid status transition")
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	UserID   string
	Payment  PaymentDetails
	Shipping models.ShippingAddress
}

type placeOrderBody struct {
	Payment  PaymentDetails         `json:"payment" binding:"required"`
	Shipping models.ShippingAddress `json:"shipping" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// orderLookup matches either the numeric id or the order_ref. The two are
// never mixed in one clause: comparing a ref string against the bigint id
// column would fail in Postgres.
func orderLookup(db *gorm.DB, id string) *gorm.DB {
	if _, err := strconv.Atoi(id); err == nil {
		return db.Where("id = ?", id)
	}
	return db.Where("order_ref = ?", id)
}

// -------- Core Logic --------

// PlaceOrder commits a checkout. It validates payment and shipping, reads
// the checkout snapshot (falling back to the live cart when none was
// captured), and in one transaction locks each product, decrements stock
// only when sufficient, freezes the order items, and clears the cart.
func PlaceOrder(ctx context.Context, db *gorm.DB, snapshots store.SnapshotStore, req PlaceOrderRequest) (*models.Order, error) {
	if err := ValidatePayment(req.Payment); err != nil {
		return nil, err
	}
	if err := ValidateShipping(req.Shipping); err != nil {
		return nil, err
	}

	items, err := checkoutItems(ctx, db, snapshots, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := models.Order{
		OrderRef:          generateOrderRef(),
		UserID:            req.UserID,
		TotalAmount:       cartControllers.Subtotal(items),
		Status:            models.OrderStatusPending,
		PaymentMethod:     req.Payment.Method,
		PaymentReference:  PaymentReference(req.Payment),
		Shipping:          req.Shipping,
		EstimatedDelivery: now.Add(deliveryLeadTime),
		CreatedAt:         now,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			UnitPrice:    item.ProductPrice,
			Quantity:     item.Quantity,
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			// Conditional decrement: the lock plus this check is what keeps
			// stock from ever going negative under concurrent purchases.
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, item.ProductName)
			}
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear cart items
		var cart models.Cart
		if err := tx.Where("user_id = ?", req.UserID).First(&cart).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	// The snapshot is consumed; a failure here only means an early sweep.
	_ = snapshots.Delete(ctx, req.UserID)

	return &order, nil
}

func checkoutItems(ctx context.Context, db *gorm.DB, snapshots store.SnapshotStore, userID string) ([]models.CartItem, error) {
	snap, err := snapshots.Load(ctx, userID)
	if err == nil && len(snap.Items) > 0 {
		return snap.Items, nil
	}
	if err != nil && !errors.Is(err, store.ErrSnapshotNotFound) {
		return nil, err
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return cart.Items, nil
}

// CancelOrder restores stock for each item and marks the order Cancelled.
// Cancelling a Delivered or already-Cancelled order is a no-op; the second
// return value reports whether anything changed.
func CancelOrder(db *gorm.DB, orderID, userID string) (*models.Order, bool, error) {
	var order models.Order
	q := orderLookup(db, orderID).Preload("Items")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.First(&order).Error; err != nil {
		return nil, false, err
	}

	if !CanCancel(order.Status) {
		return &order, false, nil
	}

	cancelled := false
	err := db.Transaction(func(tx *gorm.DB) error {
		// Re-read under lock: a concurrent cancel or status transition may
		// have landed since the read above, and restoring stock twice (or on
		// a delivered order) must not happen.
		var current models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", order.ID).Error; err != nil {
			return err
		}
		if !CanCancel(current.Status) {
			order.Status = current.Status
			return nil
		}

		for _, item := range order.Items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product removed from the catalogue since ordering; nothing
				// to restore.
				continue
			}
			if err != nil {
				return err
			}
			product.Stock += item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCancelled).Error; err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if cancelled {
		order.Status = models.OrderStatusCancelled
	}
	return &order, cancelled, nil
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB, snapshots store.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var body placeOrderBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(c.Request.Context(), db, snapshots, PlaceOrderRequest{
			UserID:   userID,
			Payment:  body.Payment,
			Shipping: body.Shipping,
		})
		switch {
		case err == nil:
			broadcastOrderEvent("order_placed", *order)
			c.JSON(http.StatusCreated, gin.H{
				"message": "Order placed successfully",
				"order":   order,
			})
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot read another user's orders"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID — numeric id or order_ref
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")

		var order models.Order
		if err := orderLookup(db, id).
			Preload("Items").
			Where("user_id = ?", c.GetString("user_id")).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, cancelled, err := CancelOrder(db, c.Param("orderID"), c.GetString("user_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		if !cancelled {
			c.JSON(http.StatusOK, gin.H{
				"message": "Order cannot be cancelled",
				"order":   order,
			})
			return
		}

		broadcastOrderEvent("order_cancelled", *order)
		c.JSON(http.StatusOK, gin.H{
			"message": "Order cancelled and stock restored",
			"order":   order,
		})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /orders/:orderID/status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Cancellation goes through the cancel endpoint so stock restoration
		// cannot be skipped.
		if newStatus == models.OrderStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Use the cancel endpoint to cancel an order"})
			return
		}

		// The transition check and write share a locked read so a racing
		// cancel or second transition cannot slip in between.
		var order models.Order
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := orderLookup(tx, orderID).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&order).Error; err != nil {
				return err
			}
			if !CanTransition(order.Status, newStatus) {
				return errInvalidTransition
			}
			return tx.Model(&order).Update("status", newStatus).Error
		})
		switch {
		case txErr == nil:
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		case errors.Is(txErr, errInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": fmt.Sprintf("cannot transition from %s to %s", order.Status, newStatus),
			})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		order.Status = newStatus
		if err := db.Find(&order.Items, "order_id = ?", order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		broadcastOrderEvent("order_status", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}
