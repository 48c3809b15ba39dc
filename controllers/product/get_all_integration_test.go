package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
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

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))

	require.NoError(t, db.Exec(
		`TRUNCATE TABLE product_categories, products, categories RESTART IDENTITY CASCADE`,
	).Error)

	return db
}

func listProducts(t *testing.T, db *gorm.DB, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/products"+query, nil)

	GetProducts(db)(c)
	return w
}

func TestGetProducts_Pagination(t *testing.T) {
	db := setupTestDB(t)

	for i := 1; i <= 12; i++ {
		require.NoError(t, db.Create(&models.Product{
			Name:  fmt.Sprintf("Chocolate %02d", i),
			Price: float64(i * 10),
			Stock: 5,
		}).Error)
	}

	// Without a page param the full catalogue comes back as a plain list
	w := listProducts(t, db, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 12)

	// First page holds the default 10, with the counts alongside
	w = listProducts(t, db, "?page=1&sort_by=name&order=asc")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Products   []models.Product `json:"products"`
		Total      int64            `json:"total"`
		Page       int              `json:"page"`
		PerPage    int              `json:"per_page"`
		TotalPages int64            `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Products, 10)
	require.EqualValues(t, 12, page.Total)
	require.Equal(t, 10, page.PerPage)
	require.EqualValues(t, 2, page.TotalPages)
	require.Equal(t, "Chocolate 01", page.Products[0].Name)

	// Second page holds the remainder
	w = listProducts(t, db, "?page=2&sort_by=name&order=asc")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Products, 2)
	require.Equal(t, "Chocolate 11", page.Products[0].Name)

	// per_page caps the page size
	w = listProducts(t, db, "?page=1&per_page=4")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Products, 4)
	require.EqualValues(t, 3, page.TotalPages)

	// Filters apply before the page is cut
	w = listProducts(t, db, "?page=1&max_price=50")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Products, 5)
	require.EqualValues(t, 5, page.Total)

	w = listProducts(t, db, "?page=0")
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = listProducts(t, db, "?page=1&per_page=500")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
