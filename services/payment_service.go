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

// PaymentService settles orders. An order is paid exactly once.
type PaymentService interface {
	Pay(ctx context.Context, userID, orderID uuid.UUID, method string) (*models.Payment, *apperrors.Error)
}

type paymentServiceImpl struct {
	payments repository.PaymentRepository
	events   kafka.ProducerAPI
	logger   *zap.Logger
}

// NewPaymentService creates a PaymentService. events may be nil, in which
// case no payment.succeeded events are published.
func NewPaymentService(payments repository.PaymentRepository, events kafka.ProducerAPI, logger *zap.Logger) PaymentService {
	return &paymentServiceImpl{
		payments: payments,
		events:   events,
		logger:   logger,
	}
}

// Pay records a successful payment for the caller's order and moves it from
// created to paid in one transaction. Amount is always the order total read
// under the row lock, so it cannot drift from what was charged.
func (s *paymentServiceImpl) Pay(ctx context.Context, userID, orderID uuid.UUID, method string) (*models.Payment, *apperrors.Error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, apperrors.NewValidation("Payment method is required")
	}

	transactionRef := identifier.TransactionRef(time.Now())

	payment, err := s.payments.RecordForOrder(ctx, userID, orderID, method, transactionRef)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.NewNotFound("Order not found")
		case errors.Is(err, repository.ErrOrderNotPayable):
			return nil, apperrors.NewState("Order has already been paid")
		default:
			s.logger.Error("Payment transaction failed", zap.Error(err))
			return nil, apperrors.NewPersistence("Failed to record payment", err)
		}
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("transaction_ref", payment.TransactionRef),
		zap.String("amount", payment.Amount.String()))

	s.publishPaymentSucceeded(ctx, payment)
	return payment, nil
}

func (s *paymentServiceImpl) publishPaymentSucceeded(ctx context.Context, payment *models.Payment) {
	if s.events == nil {
		return
	}

	event := models.PaymentSucceededEvent{
		PaymentID:      payment.ID,
		OrderID:        payment.OrderID,
		Amount:         payment.Amount,
		Method:         payment.Method,
		TransactionRef: payment.TransactionRef,
		PaidAt:         payment.PaidAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to marshal payment.succeeded event", zap.Error(err))
		return
	}
	if err := s.events.Publish(ctx, payment.OrderID.String(), payload); err != nil {
		s.logger.Warn("Failed to publish payment.succeeded event", zap.Error(err))
	}
}
