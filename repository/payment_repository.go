package repository

import (
	"context"
	"errors"
	"time"

	"storefront/identifier"
	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderNotPayable means the order has already left the created state.
var ErrOrderNotPayable = errors.New("order is not payable")

// PaymentRepository records settlements. RecordForOrder is the payment
// transaction: the payment row and the created -> paid transition become
// visible together or not at all.
type PaymentRepository interface {
	RecordForOrder(ctx context.Context, userID, orderID uuid.UUID, method, transactionRef string) (*models.Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
}

type gormPaymentRepo struct {
	db *gorm.DB
}

func NewGormPaymentRepo(db *gorm.DB) PaymentRepository {
	return &gormPaymentRepo{db: db}
}

func (r *gormPaymentRepo) RecordForOrder(ctx context.Context, userID, orderID uuid.UUID, method, transactionRef string) (*models.Payment, error) {
	var recorded *models.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			return err
		}
		if order.Status != models.OrderStatusCreated {
			return ErrOrderNotPayable
		}

		payment := &models.Payment{
			ID:             identifier.NewID(),
			OrderID:        order.ID,
			Method:         method,
			Status:         models.PaymentStatusSuccessful,
			Amount:         order.Total,
			PaidAt:         time.Now(),
			TransactionRef: transactionRef,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusCreated).
			Update("status", models.OrderStatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotPayable
		}

		recorded = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func (r *gormPaymentRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
