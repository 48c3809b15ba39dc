package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/shopsphere-dev/storefront-api/controllers/order"
	"github.com/shopsphere-dev/storefront-api/middleware"
	"github.com/shopsphere-dev/storefront-api/store"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, snapshots store.SnapshotStore) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Commit the checkout
		orders.POST("/place", orderControllers.PlaceOrderHandler(db, snapshots))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Order history for a user
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Single order by id or order_ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Cancel (restores stock)
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}
}
