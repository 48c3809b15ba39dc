package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shopsphere-dev/storefront-api/store"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, snapshots store.SnapshotStore) {
	// Public auth routes (rate limited, no token)
	SetupAuthRoutes(r, db)

	// Public catalogue browsing
	SetupCatalogRoutes(r, db)

	// User routes (JWT protected): profile, cart, wishlist, checkout
	SetupUserRoutes(r, db, snapshots)

	// Order routes (JWT protected)
	SetupOrderRoutes(r, db, snapshots)

	// Admin routes (API key protected)
	SetupAdminRoutes(r, db)
}
