package models

import "time"

type Wishlist struct {
	WishlistID uint           `gorm:"primaryKey" json:"wishlist_id"`
	UserID     string         `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE wishlist per user
	Items      []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// WishlistItem has no quantity; membership is toggled. The composite unique
// index keeps at most one entry per product per wishlist.
type WishlistItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	WishlistID   uint      `gorm:"uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID    uint      `gorm:"uniqueIndex:idx_wishlist_product" json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	ProductPrice float64   `json:"product_price"`
	AddedAt      time.Time `json:"added_at"`
}
