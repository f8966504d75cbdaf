package repository

import (
	"context"

	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.ReviewDetail, error)
	FindRecentApproved(ctx context.Context, limit int) ([]models.ReviewDetail, error)
}

type gormReviewRepo struct {
	db *gorm.DB
}

func NewGormReviewRepo(db *gorm.DB) ReviewRepository {
	return &gormReviewRepo{db: db}
}

func (r *gormReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *gormReviewRepo) FindApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.ReviewDetail, error) {
	var details []models.ReviewDetail
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select(`reviews.comment,
			reviews.rating,
			reviews.created_at,
			users.first_name,
			users.last_name,
			products.name AS product_name`).
		Joins("JOIN users ON users.id = reviews.user_id").
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("reviews.approved = ? AND reviews.product_id = ?", true, productID).
		Order("reviews.created_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *gormReviewRepo) FindRecentApproved(ctx context.Context, limit int) ([]models.ReviewDetail, error) {
	var details []models.ReviewDetail
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select(`reviews.comment,
			reviews.rating,
			reviews.created_at,
			users.first_name,
			users.last_name,
			products.name AS product_name`).
		Joins("JOIN users ON users.id = reviews.user_id").
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("reviews.approved = ?", true).
		Order("reviews.created_at DESC").
		Limit(limit).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
