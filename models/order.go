package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

// Order is an immutable snapshot of a checkout. Total is fixed at creation;
// the only mutation ever applied is the created -> paid status transition.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	Status          string          `gorm:"type:varchar(20);not null" json:"status"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	ShippingAddress string          `gorm:"not null" json:"shipping_address"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

// OrderItem freezes quantity and price at the moment of checkout so later
// catalog price changes cannot alter a placed order's value.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"column:price_at_order;type:decimal(10,2);not null" json:"price_at_order"`
}
