package repository

import (
	"context"
	"errors"
	"time"

	"storefront/identifier"
	"storefront/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel failures surfaced by the checkout transaction. The service layer
// translates them into the caller-facing taxonomy.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductInactive = errors.New("product is inactive")
)

// OrderRepository owns the immutable order snapshots. CreateFromCart is the
// checkout transaction: everything between locking the cart lines and
// clearing them commits as one unit or not at all.
type OrderRepository interface {
	CreateFromCart(ctx context.Context, userID uuid.UUID, orderNumber, shippingAddress string) (*models.Order, error)
	FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type gormOrderRepo struct {
	db *gorm.DB
}

func NewGormOrderRepo(db *gorm.DB) OrderRepository {
	return &gormOrderRepo{db: db}
}

func (r *gormOrderRepo) CreateFromCart(ctx context.Context, userID uuid.UUID, orderNumber, shippingAddress string) (*models.Order, error) {
	var created *models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Order("added_at DESC").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			productIDs = append(productIDs, line.ProductID)
		}

		var products []models.Product
		if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
		productByID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			productByID[p.ID] = p
		}

		// Prices are read here, once, and frozen into the items. The order
		// total and the item sum agree by construction.
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			product, ok := productByID[line.ProductID]
			if !ok {
				return gorm.ErrRecordNotFound
			}
			if !product.Active {
				return ErrProductInactive
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ID:           identifier.NewID(),
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				PriceAtOrder: product.Price,
			})
		}

		order := &models.Order{
			ID:              identifier.NewID(),
			UserID:          userID,
			OrderNumber:     orderNumber,
			Status:          models.OrderStatusCreated,
			Total:           total,
			ShippingAddress: shippingAddress,
			CreatedAt:       time.Now(),
			OrderItems:      items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *gormOrderRepo) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
