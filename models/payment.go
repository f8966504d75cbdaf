package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const PaymentStatusSuccessful = "successful"

// Payment records a settlement against an order. The unique index on OrderID
// backs the at-most-one-successful-payment rule at the store level.
type Payment struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Method         string          `gorm:"not null" json:"method"`
	Status         string          `gorm:"type:varchar(20);not null" json:"status"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaidAt         time.Time       `gorm:"not null" json:"paid_at"`
	TransactionRef string          `gorm:"uniqueIndex;not null" json:"transaction_ref"`
}
