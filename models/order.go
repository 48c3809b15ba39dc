package models

import "time"

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending    OrderStatus = "Pending"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "Processing" // Being prepared for dispatch
	OrderStatusShipped    OrderStatus = "Shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "Cancelled"  // Cancelled before delivery

	// Payment methods offered at checkout
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
	PaymentMethodCOD        PaymentMethod = "cod"
)

type Order struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	OrderRef          string          `gorm:"uniqueIndex" json:"order_ref"`
	UserID            string          `gorm:"not null;index" json:"user_id"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount       float64         `json:"total_amount"`
	Status            OrderStatus     `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	PaymentMethod     PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`
	PaymentReference  string          `json:"payment_reference"` // masked card / UPI id / bank
	Shipping          ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	CreatedAt         time.Time       `json:"created_at"`
}

// OrderItem freezes price and quantity at order time.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}

// ShippingAddress is the delivery form captured at checkout, embedded on the
// order row so later profile edits never rewrite order history.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}
