package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopsphere-dev/storefront-api/models"
	"gorm.io/gorm"
)

// DeleteProduct soft-deletes a product. Existing cart and order lines keep
// their snapshots.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Where("id = ?", id).Delete(&models.Product{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
