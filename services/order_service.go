package services

import (
	"context"
	"errors"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService is the read surface over a user's own orders.
type OrderService interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *apperrors.Error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *models.Payment, *apperrors.Error)
	GetOrderItems(ctx context.Context, userID, orderID uuid.UUID) ([]models.OrderItem, *apperrors.Error)
}

type orderServiceImpl struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, payments repository.PaymentRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *apperrors.Error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder returns the order with its payment, if one has been recorded.
// A missing payment is not an error; the order simply has not been paid yet.
func (s *orderServiceImpl) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, *models.Payment, *apperrors.Error) {
	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NewNotFound("Order not found")
		}
		s.logger.Error("Failed to load order", zap.Error(err))
		return nil, nil, apperrors.NewPersistence("Failed to load order", err)
	}

	payment, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, nil, nil
		}
		s.logger.Error("Failed to load payment for order", zap.Error(err))
		return nil, nil, apperrors.NewPersistence("Failed to load order", err)
	}
	return order, payment, nil
}

func (s *orderServiceImpl) GetOrderItems(ctx context.Context, userID, orderID uuid.UUID) ([]models.OrderItem, *apperrors.Error) {
	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Order not found")
		}
		s.logger.Error("Failed to load order items", zap.Error(err))
		return nil, apperrors.NewPersistence("Failed to load order", err)
	}
	if order.OrderItems == nil {
		return []models.OrderItem{}, nil
	}
	return order.OrderItems, nil
}
