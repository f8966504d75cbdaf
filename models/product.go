package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string     `gorm:"not null" json:"name"`
	ParentID *uuid.UUID `gorm:"type:uuid" json:"parent_id,omitempty"`
	Active   bool       `gorm:"not null;default:true" json:"active"`
}

type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string          `gorm:"not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Color      string          `json:"color"`
	Size       string          `json:"size"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	ImageRef   string          `json:"image_ref"`
	Active     bool            `gorm:"not null;default:true" json:"active"`
}
