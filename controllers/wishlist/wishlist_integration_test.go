package wishlistControllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopsphere-dev/storefront-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	require.NoError(t, err, "connect database")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
	))

	require.NoError(t, db.Exec(
		`TRUNCATE TABLE cart_items, carts, wishlist_items, wishlists,
		 products, users RESTART IDENTITY CASCADE`,
	).Error)

	return db
}

func toggle(t *testing.T, db *gorm.DB, userID string, productID uint) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)

	body := bytes.NewBufferString(fmt.Sprintf(`{"product_id":%d}`, productID))
	c.Request = httptest.NewRequest(http.MethodPost, "/user/wishlist/toggle", body)
	c.Request.Header.Set("Content-Type", "application/json")

	ToggleWishlistItem(db)(c)
	return w
}

func TestToggleWishlist_Integration(t *testing.T) {
	db := setupTestDB(t)

	userID := uuid.NewString()
	user := models.User{
		ID:           userID,
		Email:        userID + "@example.com",
		PasswordHash: "x",
		Cart:         models.Cart{UserID: userID},
		Wishlist:     models.Wishlist{UserID: userID},
	}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{Name: "Dark Chocolate Box", Price: 100, Stock: 5}
	require.NoError(t, db.Create(&product).Error)

	count := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.WishlistItem{}).Count(&n).Error)
		return n
	}

	// First toggle adds
	w := toggle(t, db, userID, product.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, count())

	// Second toggle removes: the wishlist is back to its original set
	w = toggle(t, db, userID, product.ID)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 0, count())
}

func TestToggleWishlist_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	userID := uuid.NewString()
	user := models.User{
		ID:           userID,
		Email:        userID + "@example.com",
		PasswordHash: "x",
		Cart:         models.Cart{UserID: userID},
		Wishlist:     models.Wishlist{UserID: userID},
	}
	require.NoError(t, db.Create(&user).Error)

	w := toggle(t, db, userID, 9999)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func moveToCart(t *testing.T, db *gorm.DB, userID string, productID uint) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Params = gin.Params{{Key: "product_id", Value: fmt.Sprint(productID)}}

	c.Request = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/user/wishlist/%d/move-to-cart", productID), nil)

	MoveToCart(db)(c)
	return w
}

func TestMoveToCart_Integration(t *testing.T) {
	db := setupTestDB(t)

	userID := uuid.NewString()
	user := models.User{
		ID:           userID,
		Email:        userID + "@example.com",
		PasswordHash: "x",
		Cart:         models.Cart{UserID: userID},
		Wishlist:     models.Wishlist{UserID: userID},
	}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{Name: "Hazelnut Bar", Price: 50, Stock: 3}
	require.NoError(t, db.Create(&product).Error)

	w := toggle(t, db, userID, product.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w = moveToCart(t, db, userID, product.ID)
	require.Equal(t, http.StatusOK, w.Code)

	// Wishlist entry gone, cart holds a quantity-1 line
	var wishlistCount int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&wishlistCount).Error)
	require.EqualValues(t, 0, wishlistCount)

	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error)
	require.Len(t, cart.Items, 1)
	require.Equal(t, product.ID, cart.Items[0].ProductID)
	require.Equal(t, 1, cart.Items[0].Quantity)

	// Not on the wishlist any more
	w = moveToCart(t, db, userID, product.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveToCart_OutOfStock(t *testing.T) {
	db := setupTestDB(t)

	userID := uuid.NewString()
	user := models.User{
		ID:           userID,
		Email:        userID + "@example.com",
		PasswordHash: "x",
		Cart:         models.Cart{UserID: userID},
		Wishlist:     models.Wishlist{UserID: userID},
	}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{Name: "Gift Hamper", Price: 300, Stock: 1}
	require.NoError(t, db.Create(&product).Error)

	w := toggle(t, db, userID, product.ID)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.Model(&product).Update("stock", 0).Error)

	w = moveToCart(t, db, userID, product.ID)
	require.Equal(t, http.StatusConflict, w.Code)

	// The wishlist entry stays when the move is refused
	var wishlistCount int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&wishlistCount).Error)
	require.EqualValues(t, 1, wishlistCount)
}
