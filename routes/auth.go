package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shopsphere-dev/storefront-api/auth"
	"github.com/shopsphere-dev/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	limiter := middleware.NewRateLimiter(1, 5) // 1 req/s with a burst of 5 per IP

	authGroup := r.Group("/auth")
	authGroup.Use(limiter.Limit())
	{
		authGroup.POST("/signup", auth.SignupHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/logout", auth.LogoutHandler())
	}
}
