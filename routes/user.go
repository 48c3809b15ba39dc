package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/shopsphere-dev/storefront-api/controllers/cart"
	orderControllers "github.com/shopsphere-dev/storefront-api/controllers/order"
	userControllers "github.com/shopsphere-dev/storefront-api/controllers/user"
	wishlistControllers "github.com/shopsphere-dev/storefront-api/controllers/wishlist"
	"github.com/shopsphere-dev/storefront-api/middleware"
	"github.com/shopsphere-dev/storefront-api/store"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, snapshots store.SnapshotStore) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.AddCartItem(db))
			cartGroup.PATCH("/", cartControllers.ReplaceCart(db))
			cartGroup.POST("/:product_id/increase", cartControllers.IncreaseCartItem(db))
			cartGroup.POST("/:product_id/decrease", cartControllers.DecreaseCartItem(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/toggle", wishlistControllers.ToggleWishlistItem(db))
			wishlistGroup.POST("/:product_id/move-to-cart", wishlistControllers.MoveToCart(db))
		}

		// ──────────────── Checkout Snapshot ────────────────
		userGroup.POST("/checkout", orderControllers.BeginCheckout(db, snapshots))
		userGroup.GET("/checkout", orderControllers.GetCheckout(snapshots))
	}
}
