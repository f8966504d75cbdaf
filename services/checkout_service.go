package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	apperrors "storefront/common/errors"
	"storefront/identifier"
	"storefront/kafka"
	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutService turns a mutable cart into an immutable order snapshot.
type CheckoutService interface {
	Begin(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, *apperrors.Error)
}

type checkoutServiceImpl struct {
	orders repository.OrderRepository
	events kafka.ProducerAPI
	logger *zap.Logger
}

// NewCheckoutService creates a CheckoutService. events may be nil, in which
// case no order.created events are published.
func NewCheckoutService(orders repository.OrderRepository, events kafka.ProducerAPI, logger *zap.Logger) CheckoutService {
	return &checkoutServiceImpl{
		orders: orders,
		events: events,
		logger: logger,
	}
}

// Begin snapshots the user's cart into an order: prices are read once inside
// the repository transaction, items are frozen with price_at_order, the cart
// is emptied, and the whole thing commits or rolls back as one unit.
func (s *checkoutServiceImpl) Begin(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, *apperrors.Error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, apperrors.NewValidation("Shipping address is required")
	}

	orderNumber := identifier.OrderNumber(time.Now())

	order, err := s.orders.CreateFromCart(ctx, userID, orderNumber, shippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyCart):
			return nil, apperrors.NewState("Cart is empty")
		case errors.Is(err, repository.ErrProductInactive):
			return nil, apperrors.NewUnavailable("A product in the cart is no longer available")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.NewNotFound("Product not found")
		default:
			s.logger.Error("Checkout transaction failed", zap.Error(err))
			return nil, apperrors.NewPersistence("Failed to create order", err)
		}
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("total", order.Total.String()))

	s.publishOrderCreated(ctx, order)
	return order, nil
}

// publishOrderCreated is best-effort: the order is already committed, so a
// broker failure only costs the event, never the order.
func (s *checkoutServiceImpl) publishOrderCreated(ctx context.Context, order *models.Order) {
	if s.events == nil {
		return
	}

	event := models.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to marshal order.created event", zap.Error(err))
		return
	}
	if err := s.events.Publish(ctx, order.UserID.String(), payload); err != nil {
		s.logger.Warn("Failed to publish order.created event", zap.Error(err))
	}
}
