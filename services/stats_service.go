package services

import (
	"context"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsService exposes the reporting queries with sane parameter bounds.
type StatsService interface {
	TopSellingProducts(ctx context.Context, limit int) ([]models.ProductSales, *apperrors.Error)
	CategorySalesRank(ctx context.Context) ([]models.CategoryProductSales, *apperrors.Error)
	ProductRatings(ctx context.Context, minReviews int) ([]models.ProductRating, *apperrors.Error)
	TopBuyers(ctx context.Context, limit int) ([]models.TopBuyer, *apperrors.Error)
	OrderAmountComparison(ctx context.Context) ([]models.OrderAmountComparison, *apperrors.Error)
	OrdersByStatus(ctx context.Context, status string) ([]models.OrderByStatus, *apperrors.Error)
	ProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, *apperrors.Error)
	ReviewsAboveRating(ctx context.Context, minRating int) ([]models.ReviewDetail, *apperrors.Error)
}

type statsServiceImpl struct {
	stats  repository.StatsRepository
	logger *zap.Logger
}

func NewStatsService(stats repository.StatsRepository, logger *zap.Logger) StatsService {
	return &statsServiceImpl{stats: stats, logger: logger}
}

func (s *statsServiceImpl) TopSellingProducts(ctx context.Context, limit int) ([]models.ProductSales, *apperrors.Error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.stats.TopSellingProducts(ctx, limit)
	if err != nil {
		s.logger.Error("Top selling products query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}

func (s *statsServiceImpl) CategorySalesRank(ctx context.Context) ([]models.CategoryProductSales, *apperrors.Error) {
	rows, err := s.stats.CategorySalesRank(ctx)
	if err != nil {
		s.logger.Error("Category sales rank query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}

func (s *statsServiceImpl) ProductRatings(ctx context.Context, minReviews int) ([]models.ProductRating, *apperrors.Error) {
	if minReviews < 1 {
		minReviews = 1
	}
	rows, err := s.stats.ProductRatings(ctx, minReviews)
	if err != nil {
		s.logger.Error("Product ratings query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}

func (s *statsServiceImpl) TopBuyers(ctx context.Context, limit int) ([]models.TopBuyer, *apperrors.Error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.stats.TopBuyers(ctx, limit)
	if err != nil {
		s.logger.Error("Top buyers query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}

func (s *statsServiceImpl) OrderAmountComparison(ctx context.Context) ([]models.OrderAmountComparison, *apperrors.Error) {
	rows, err := s.stats.OrderAmountComparison(ctx)
	if err != nil {
		s.logger.Error("Order amount comparison query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}

func (s *statsServiceImpl) OrdersByStatus(ctx context.Context, status string) ([]models.OrderByStatus, *apperrors.Error) {
	if status != models.OrderStatusCreated && status != models.OrderStatusPaid {
		return nil, apperrors.NewValidation("Unknown order status")
	}
	rows, err := s.stats.OrdersByStatus(ctx, status)
	if err != nil {
		s.logger.Error("Orders by status query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}

func (s *statsServiceImpl) ProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, *apperrors.Error) {
	if min.IsNegative() || max.LessThan(min) {
		return nil, apperrors.NewValidation("Invalid price range")
	}
	products, err := s.stats.ProductsInPriceRange(ctx, min, max)
	if err != nil {
		s.logger.Error("Products in price range query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return products, nil
}

func (s *statsServiceImpl) ReviewsAboveRating(ctx context.Context, minRating int) ([]models.ReviewDetail, *apperrors.Error) {
	if minRating < 1 || minRating > 5 {
		return nil, apperrors.NewValidation("Rating must be between 1 and 5")
	}
	rows, err := s.stats.ReviewsAboveRating(ctx, minRating)
	if err != nil {
		s.logger.Error("Reviews above rating query failed", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load report", err)
	}
	return rows, nil
}
