package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/shopsphere-dev/storefront-api/controllers/product"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers public product browsing. No auth: anyone can
// browse; mutations live under /user and /admin.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
}
