package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/shopsphere-dev/storefront-api/controllers/cart"
	"github.com/shopsphere-dev/storefront-api/models"
	"github.com/shopsphere-dev/storefront-api/store"
	"gorm.io/gorm"
)

// POST /user/checkout
//
// Captures the checkout snapshot: a copy of the cart items and their
// subtotal that the commit step works from. Entering checkout again replaces
// any previous snapshot.
func BeginCheckout(db *gorm.DB, snapshots store.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		snap := store.CheckoutSnapshot{
			UserID:    userID,
			Items:     cart.Items,
			Subtotal:  cartControllers.Subtotal(cart.Items),
			CreatedAt: time.Now(),
		}
		if err := snapshots.Save(c.Request.Context(), snap); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save checkout snapshot"})
			return
		}

		c.JSON(http.StatusOK, snap)
	}
}

// GET /user/checkout
func GetCheckout(snapshots store.SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		snap, err := snapshots.Load(c.Request.Context(), userID)
		if errors.Is(err, store.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No checkout in progress"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout snapshot"})
			return
		}

		c.JSON(http.StatusOK, snap)
	}
}
