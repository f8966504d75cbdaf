package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService serves product and category browsing. Reads go through a
// Redis read-through cache when one is configured; cache failures degrade to
// straight database reads.
type CatalogService interface {
	ListProducts(ctx context.Context, categoryID *uuid.UUID) ([]models.Product, *apperrors.Error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *apperrors.Error)
	ListCategories(ctx context.Context) ([]models.Category, *apperrors.Error)
}

type catalogServiceImpl struct {
	products repository.ProductRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil to disable
// caching entirely.
func NewCatalogService(products repository.ProductRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		products: products,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, categoryID *uuid.UUID) ([]models.Product, *apperrors.Error) {
	key := "catalog:products:all"
	if categoryID != nil {
		key = "catalog:products:category:" + categoryID.String()
	}

	var cached []models.Product
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.products.FindActive(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load products", err)
	}

	s.cacheSet(ctx, key, products)
	return products, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *apperrors.Error) {
	key := "catalog:product:" + id.String()

	var cached models.Product
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Product not found")
		}
		s.logger.Error("Failed to load product", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load product", err)
	}
	if !product.Active {
		return nil, apperrors.NewNotFound("Product not found")
	}

	s.cacheSet(ctx, key, product)
	return product, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *apperrors.Error) {
	key := "catalog:categories"

	var cached []models.Category
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.products.FindActiveCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load categories", err)
	}

	s.cacheSet(ctx, key, categories)
	return categories, nil
}

func (s *catalogServiceImpl) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		s.logger.Warn("Catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *catalogServiceImpl) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
