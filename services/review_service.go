package services

import (
	"context"
	"errors"
	"strings"

	apperrors "storefront/common/errors"
	"storefront/identifier"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewService accepts reviews (held for moderation) and serves approved
// ones.
type ReviewService interface {
	AddReview(ctx context.Context, userID, productID uuid.UUID, rating int, comment string) (*models.Review, *apperrors.Error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewDetail, *apperrors.Error)
	RecentReviews(ctx context.Context, limit int) ([]models.ReviewDetail, *apperrors.Error)
}

type reviewServiceImpl struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{
		reviews:  reviews,
		products: products,
		logger:   logger,
	}
}

func (s *reviewServiceImpl) AddReview(ctx context.Context, userID, productID uuid.UUID, rating int, comment string) (*models.Review, *apperrors.Error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidation("Rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, apperrors.NewValidation("Comment is required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Product not found")
		}
		return nil, apperrors.NewPersistence("Failed to add review", err)
	}

	review := &models.Review{
		ID:        identifier.NewID(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		Approved:  false,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		s.logger.Error("Failed to create review", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to add review", err)
	}

	s.logger.Info("Review submitted for moderation",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()))
	return review, nil
}

func (s *reviewServiceImpl) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.ReviewDetail, *apperrors.Error) {
	details, err := s.reviews.FindApprovedByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list product reviews", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load reviews", err)
	}
	return details, nil
}

func (s *reviewServiceImpl) RecentReviews(ctx context.Context, limit int) ([]models.ReviewDetail, *apperrors.Error) {
	if limit <= 0 {
		limit = 3
	}
	details, err := s.reviews.FindRecentApproved(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list recent reviews", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load reviews", err)
	}
	return details, nil
}
