package repository

import (
	"context"

	"storefront/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsRepository runs the canned reporting queries. Callers pick a query and
// its parameters; no SQL ever crosses this boundary from outside.
type StatsRepository interface {
	TopSellingProducts(ctx context.Context, limit int) ([]models.ProductSales, error)
	CategorySalesRank(ctx context.Context) ([]models.CategoryProductSales, error)
	ProductRatings(ctx context.Context, minReviews int) ([]models.ProductRating, error)
	TopBuyers(ctx context.Context, limit int) ([]models.TopBuyer, error)
	OrderAmountComparison(ctx context.Context) ([]models.OrderAmountComparison, error)
	OrdersByStatus(ctx context.Context, status string) ([]models.OrderByStatus, error)
	ProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error)
	ReviewsAboveRating(ctx context.Context, minRating int) ([]models.ReviewDetail, error)
}

type gormStatsRepo struct {
	db *gorm.DB
}

func NewGormStatsRepo(db *gorm.DB) StatsRepository {
	return &gormStatsRepo{db: db}
}

func (r *gormStatsRepo) TopSellingProducts(ctx context.Context, limit int) ([]models.ProductSales, error) {
	var rows []models.ProductSales
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.name AS product_name,
		       SUM(oi.quantity) AS sold,
		       RANK() OVER (ORDER BY SUM(oi.quantity) DESC) AS sales_rank
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE p.active = TRUE
		GROUP BY p.id, p.name
		ORDER BY sold DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepo) CategorySalesRank(ctx context.Context) ([]models.CategoryProductSales, error) {
	var rows []models.CategoryProductSales
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.name AS category,
		       p.name AS product_name,
		       SUM(oi.quantity) AS sold,
		       RANK() OVER (PARTITION BY c.id ORDER BY SUM(oi.quantity) DESC) AS rank_inside_category
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE p.active = TRUE
		GROUP BY c.id, c.name, p.id, p.name
		ORDER BY c.name, sold DESC`).Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepo) ProductRatings(ctx context.Context, minReviews int) ([]models.ProductRating, error) {
	var rows []models.ProductRating
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.name AS product_name,
		       ROUND(AVG(rv.rating), 2) AS average_rating,
		       COUNT(rv.id) AS review_count
		FROM reviews rv
		JOIN products p ON p.id = rv.product_id
		WHERE rv.approved = TRUE
		GROUP BY p.id, p.name
		HAVING COUNT(rv.id) >= ?
		ORDER BY average_rating DESC`, minReviews).Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepo) TopBuyers(ctx context.Context, limit int) ([]models.TopBuyer, error) {
	var rows []models.TopBuyer
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.first_name || ' ' || u.last_name AS buyer,
		       COUNT(o.id) AS order_count,
		       SUM(o.total) AS total_spent
		FROM orders o
		JOIN users u ON u.id = o.user_id
		GROUP BY u.id, u.first_name, u.last_name
		ORDER BY order_count DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepo) OrderAmountComparison(ctx context.Context) ([]models.OrderAmountComparison, error) {
	var rows []models.OrderAmountComparison
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.order_number,
		       o.total,
		       ROUND(AVG(o.total) OVER (), 2) AS average_total,
		       o.total - ROUND(AVG(o.total) OVER (), 2) AS deviation_total
		FROM orders o
		ORDER BY o.total DESC`).Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepo) OrdersByStatus(ctx context.Context, status string) ([]models.OrderByStatus, error) {
	var rows []models.OrderByStatus
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.order_number,
		       u.first_name || ' ' || u.last_name AS buyer,
		       o.total,
		       o.status,
		       o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.status = ?
		ORDER BY o.created_at DESC`, status).Scan(&rows).Error
	return rows, err
}

func (r *gormStatsRepo) ProductsInPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND price BETWEEN ? AND ?", true, min, max).
		Order("price DESC").
		Find(&products).Error
	return products, err
}

func (r *gormStatsRepo) ReviewsAboveRating(ctx context.Context, minRating int) ([]models.ReviewDetail, error) {
	var rows []models.ReviewDetail
	err := r.db.WithContext(ctx).Raw(`
		SELECT rv.comment,
		       rv.rating,
		       rv.created_at,
		       u.first_name,
		       u.last_name,
		       p.name AS product_name
		FROM reviews rv
		JOIN products p ON p.id = rv.product_id
		JOIN users u ON u.id = rv.user_id
		WHERE rv.approved = TRUE AND rv.rating >= ?
		ORDER BY rv.rating DESC, rv.created_at DESC`, minRating).Scan(&rows).Error
	return rows, err
}
