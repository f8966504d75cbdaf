package repository

import (
	"context"
	"time"

	"storefront/identifier"
	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository owns the mutable (user, product, quantity) rows. Every
// mutation is atomic: the quantity merge rides on an upsert so two concurrent
// adds of the same product can never produce two rows or a lost update.
type CartRepository interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) error
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLineDetail, error)
}

type gormCartRepo struct {
	db *gorm.DB
}

func NewGormCartRepo(db *gorm.DB) CartRepository {
	return &gormCartRepo{db: db}
}

func (r *gormCartRepo) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	line := models.CartLine{
		ID:        identifier.NewID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_lines.quantity + ?", qty),
			"added_at": line.AddedAt,
		}),
	}).Create(&line).Error
}

func (r *gormCartRepo) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) error {
	res := r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Updates(map[string]interface{}{
			"quantity": qty,
			"added_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormCartRepo) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormCartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLineDetail, error) {
	var details []models.CartLineDetail
	err := r.db.WithContext(ctx).
		Table("cart_lines").
		Select(`cart_lines.id AS line_id,
			cart_lines.product_id,
			products.name,
			products.color,
			categories.name AS category,
			products.price,
			cart_lines.quantity,
			cart_lines.added_at`).
		Joins("JOIN products ON products.id = cart_lines.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("cart_lines.user_id = ?", userID).
		Order("cart_lines.added_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
