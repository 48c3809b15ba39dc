package cartControllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

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

func seedUserWithCart(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	userID := uuid.NewString()
	user := models.User{
		ID:           userID,
		Email:        userID + "@example.com",
		PasswordHash: "x",
		Cart:         models.Cart{UserID: userID},
		Wishlist:     models.Wishlist{UserID: userID},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func replaceCart(t *testing.T, db *gorm.DB, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)

	c.Request = httptest.NewRequest(http.MethodPatch, "/user/cart", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	ReplaceCart(db)(c)
	return w
}

func cartLines(t *testing.T, db *gorm.DB, userID string) []models.CartItem {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error)
	return cart.Items
}

func TestReplaceCart_Integration(t *testing.T) {
	db := setupTestDB(t)

	user := seedUserWithCart(t, db)
	productA := seedProduct(t, db, "Dark Chocolate Box", 100, 5)
	productB := seedProduct(t, db, "Hazelnut Bar", 50, 3)

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:       cart.CartID,
		ProductID:    productA.ID,
		ProductName:  productA.Name,
		ProductPrice: productA.Price,
		ProductStock: productA.Stock,
		Quantity:     1,
		AddedAt:      time.Now(),
	}).Error)

	// The replace discards the existing line and stores exactly the new list
	w := replaceCart(t, db, user.ID,
		`{"items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":3}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	items := cartLines(t, db, user.ID)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[FindItem(items, productA.ID)].Quantity)
	require.Equal(t, 3, items[FindItem(items, productB.ID)].Quantity)
}

func TestReplaceCart_StockExceededRollsBack(t *testing.T) {
	db := setupTestDB(t)

	user := seedUserWithCart(t, db)
	productA := seedProduct(t, db, "Dark Chocolate Box", 100, 5)
	seedProduct(t, db, "Hazelnut Bar", 50, 3)

	w := replaceCart(t, db, user.ID,
		`{"items":[{"product_id":1,"quantity":2}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Second line exceeds stock; the whole replace rolls back and the
	// previous cart is untouched
	w = replaceCart(t, db, user.ID,
		`{"items":[{"product_id":1,"quantity":1},{"product_id":2,"quantity":4}]}`)
	require.Equal(t, http.StatusConflict, w.Code)

	items := cartLines(t, db, user.ID)
	require.Len(t, items, 1)
	require.Equal(t, productA.ID, items[0].ProductID)
	require.Equal(t, 2, items[0].Quantity)
}

func TestReplaceCart_DuplicateLine(t *testing.T) {
	db := setupTestDB(t)

	user := seedUserWithCart(t, db)
	seedProduct(t, db, "Dark Chocolate Box", 100, 5)

	w := replaceCart(t, db, user.ID,
		`{"items":[{"product_id":1,"quantity":1},{"product_id":1,"quantity":2}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, cartLines(t, db, user.ID))
}

func TestReplaceCart_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)

	user := seedUserWithCart(t, db)

	w := replaceCart(t, db, user.ID,
		`{"items":[{"product_id":9999,"quantity":1}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, cartLines(t, db, user.ID))
}

func TestReplaceCart_EmptyListClears(t *testing.T) {
	db := setupTestDB(t)

	user := seedUserWithCart(t, db)
	productA := seedProduct(t, db, "Dark Chocolate Box", 100, 5)

	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:       cart.CartID,
		ProductID:    productA.ID,
		ProductName:  productA.Name,
		ProductPrice: productA.Price,
		ProductStock: productA.Stock,
		Quantity:     2,
		AddedAt:      time.Now(),
	}).Error)

	w := replaceCart(t, db, user.ID, `{"items":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, cartLines(t, db, user.ID))
}
