package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is held back (Approved=false) until moderated.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Approved  bool      `gorm:"not null;default:false" json:"approved"`
}

// ReviewDetail is an approved review joined with reviewer and product names.
type ReviewDetail struct {
	Comment     string    `json:"comment"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	ProductName string    `json:"product_name"`
}
