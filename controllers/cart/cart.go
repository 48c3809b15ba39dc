package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopsphere-dev/storefront-api/models"
	"gorm.io/gorm"
)

var errDuplicateLine = errors.New("duplicate product in item list")

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type ReplaceCartInput struct {
	Items []ReplaceCartItem `json:"items" binding:"required"`
}

type ReplaceCartItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

func getUserCart(db *gorm.DB, userID string, preloadItems bool) (models.Cart, error) {
	var cart models.Cart
	q := db.Where("user_id = ?", userID)
	if preloadItems {
		q = q.Preload("Items")
	}
	err := q.First(&cart).Error
	return cart, err
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := getUserCart(db, userID, true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":       cart.Items,
			"subtotal":    Subtotal(cart.Items),
			"total_items": TotalItems(cart.Items),
		})
	}
}

// POST /user/cart
//
// Adds a product with quantity 1. Adding a product already in the cart is a
// no-op; the existing line is returned unchanged.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := getUserCart(db, userID, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User cart not found"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
		if err == nil {
			// Already present; no-op
			c.JSON(http.StatusOK, item)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		if product.Stock < 1 {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
			return
		}

		newItem := models.CartItem{
			CartID:       cart.CartID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			ProductStock: product.Stock,
			ProductPrice: product.Price,
			Quantity:     1,
			AddedAt:      time.Now(),
		}
		if err := db.Create(&newItem).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, newItem)
	}
}

// POST /user/cart/:product_id/increase
func IncreaseCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("product_id")

		err := db.Transaction(func(tx *gorm.DB) error {
			cart, err := getUserCart(tx, userID, false)
			if err != nil {
				return err
			}

			var item models.CartItem
			if err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
				First(&item).Error; err != nil {
				return err
			}

			// Check against the product's current stock, not the add-time snapshot
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			next, err := IncreaseQuantity(item.Quantity, product.Stock)
			if err != nil {
				return err
			}

			item.Quantity = next
			item.ProductStock = product.Stock
			return tx.Save(&item).Error
		})

		respondQuantityChange(c, db, userID, err, "Quantity increased")
	}
}

// POST /user/cart/:product_id/decrease
//
// Decreasing a quantity-1 line removes it entirely.
func DecreaseCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("product_id")

		err := db.Transaction(func(tx *gorm.DB) error {
			cart, err := getUserCart(tx, userID, false)
			if err != nil {
				return err
			}

			var item models.CartItem
			if err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
				First(&item).Error; err != nil {
				return err
			}

			next, remove := DecreaseQuantity(item.Quantity)
			if remove {
				return tx.Delete(&item).Error
			}
			item.Quantity = next
			return tx.Save(&item).Error
		})

		respondQuantityChange(c, db, userID, err, "Quantity decreased")
	}
}

func respondQuantityChange(c *gin.Context, db *gorm.DB, userID string, err error, message string) {
	switch {
	case err == nil:
		cart, loadErr := getUserCart(db, userID, true)
		if loadErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  message,
			"items":    cart.Items,
			"subtotal": Subtotal(cart.Items),
		})
	case errors.Is(err, ErrStockExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("product_id")

		cart, err := getUserCart(db, userID, false)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := getUserCart(db, userID, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// PATCH /user/cart
//
// Full replace of the item list. Every line is validated against the current
// product catalogue before anything is written; the whole replace commits or
// none of it does.
func ReplaceCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input ReplaceCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var items []models.CartItem
		err := db.Transaction(func(tx *gorm.DB) error {
			cart, err := getUserCart(tx, userID, false)
			if err != nil {
				return err
			}

			for _, line := range input.Items {
				if FindItem(items, line.ProductID) >= 0 {
					return errDuplicateLine
				}

				var product models.Product
				if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
					return err
				}
				if line.Quantity > product.Stock {
					return ErrStockExceeded
				}
				items = append(items, models.CartItem{
					CartID:       cart.CartID,
					ProductID:    product.ID,
					ProductName:  product.Name,
					ProductImage: product.Image,
					ProductStock: product.Stock,
					ProductPrice: product.Price,
					Quantity:     line.Quantity,
					AddedAt:      time.Now(),
				})
			}

			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if len(items) == 0 {
				return nil
			}
			return tx.Create(&items).Error
		})

		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": Subtotal(items)})
		case errors.Is(err, ErrStockExceeded):
			c.JSON(http.StatusConflict, gin.H{"error": "Requested quantity exceeds stock"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		case errors.Is(err, errDuplicateLine):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace cart"})
		}
	}
}
