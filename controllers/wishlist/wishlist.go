package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopsphere-dev/storefront-api/models"
	"gorm.io/gorm"
)

type ToggleInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func getUserWishlist(db *gorm.DB, userID string, preloadItems bool) (models.Wishlist, error) {
	var wishlist models.Wishlist
	q := db.Where("user_id = ?", userID)
	if preloadItems {
		q = q.Preload("Items")
	}
	err := q.First(&wishlist).Error
	return wishlist, err
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		wishlist, err := getUserWishlist(db, userID, true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User wishlist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, wishlist.Items)
	}
}

// POST /user/wishlist/toggle
//
// If the product is present it is removed, otherwise appended. Toggling
// twice returns the wishlist to its original set.
func ToggleWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ToggleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var added bool
		err := db.Transaction(func(tx *gorm.DB) error {
			wishlist, err := getUserWishlist(tx, userID, false)
			if err != nil {
				return err
			}

			var item models.WishlistItem
			err = tx.Where("wishlist_id = ? AND product_id = ?", wishlist.WishlistID, input.ProductID).
				First(&item).Error
			if err == nil {
				return tx.Delete(&item).Error
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
				return err
			}

			added = true
			return tx.Create(&models.WishlistItem{
				WishlistID:   wishlist.WishlistID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				ProductPrice: product.Price,
				AddedAt:      time.Now(),
			}).Error
		})

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}

		message := "Removed from wishlist"
		if added {
			message = "Added to wishlist"
		}
		c.JSON(http.StatusOK, gin.H{"message": message, "in_wishlist": added})
	}
}

// POST /user/wishlist/:product_id/move-to-cart
//
// Adds the product to the cart (quantity 1, no-op if already there) and
// removes it from the wishlist.
func MoveToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("product_id")

		err := db.Transaction(func(tx *gorm.DB) error {
			wishlist, err := getUserWishlist(tx, userID, false)
			if err != nil {
				return err
			}

			var item models.WishlistItem
			if err := tx.Where("wishlist_id = ? AND product_id = ?", wishlist.WishlistID, productID).
				First(&item).Error; err != nil {
				return err
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			var cart models.Cart
			if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
				return err
			}

			var existing models.CartItem
			err = tx.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).
				First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if product.Stock < 1 {
					return errOutOfStock
				}
				if err := tx.Create(&models.CartItem{
					CartID:       cart.CartID,
					ProductID:    product.ID,
					ProductName:  product.Name,
					ProductImage: product.Image,
					ProductStock: product.Stock,
					ProductPrice: product.Price,
					Quantity:     1,
					AddedAt:      time.Now(),
				}).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			return tx.Delete(&item).Error
		})

		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Moved to cart"})
		case errors.Is(err, errOutOfStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move item to cart"})
		}
	}
}

var errOutOfStock = errors.New("product out of stock")
