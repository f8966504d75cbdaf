package services

import (
	"context"
	"errors"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService is the mutable pre-checkout stage of the pipeline.
type CartService interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) *apperrors.Error
	RemoveItem(ctx context.Context, userID, lineID uuid.UUID) *apperrors.Error
	SetQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) *apperrors.Error
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, *apperrors.Error)
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// AddItem merges qty into an existing line for (user, product) or creates
// one. The product must exist and be active at the time of the mutation.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) *apperrors.Error {
	if qty < 1 {
		return apperrors.NewValidation("Quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Product not found")
		}
		s.logger.Error("Failed to load product for cart add", zap.Error(err))
		return apperrors.NewPersistence("Failed to add product to cart", err)
	}
	if !product.Active {
		return apperrors.NewUnavailable("Product is temporarily unavailable")
	}

	if err := s.carts.AddItem(ctx, userID, productID, qty); err != nil {
		s.logger.Error("Failed to upsert cart line", zap.Error(err))
		return apperrors.NewPersistence("Failed to add product to cart", err)
	}

	s.logger.Info("Cart line added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", qty))
	return nil
}

// RemoveItem deletes a line only when it belongs to the caller; a foreign or
// missing line is reported as not found either way.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) *apperrors.Error {
	if err := s.carts.RemoveLine(ctx, userID, lineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Cart line not found")
		}
		s.logger.Error("Failed to remove cart line", zap.Error(err))
		return apperrors.NewPersistence("Failed to remove cart line", err)
	}
	return nil
}

// SetQuantity updates a line's quantity; a non-positive quantity removes the
// line instead.
func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) *apperrors.Error {
	if qty <= 0 {
		return s.RemoveItem(ctx, userID, lineID)
	}

	if err := s.carts.UpdateQuantity(ctx, userID, lineID, qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Cart line not found")
		}
		s.logger.Error("Failed to update cart quantity", zap.Error(err))
		return apperrors.NewPersistence("Failed to update cart quantity", err)
	}
	return nil
}

// GetCart lists the user's lines, most recently added first, with the running
// subtotal at current catalog prices. Pre-checkout prices are not frozen yet.
func (s *cartServiceImpl) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, *apperrors.Error) {
	items, err := s.carts.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list cart", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load cart", err)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if items == nil {
		items = []models.CartLineDetail{}
	}
	return &models.CartView{
		Items:    items,
		Subtotal: subtotal,
	}, nil
}
