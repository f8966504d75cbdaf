package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"storefront/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentFixture(t *testing.T) (*memoryStore, *captureProducer, PaymentService, uuid.UUID, *models.Order) {
	t.Helper()

	store := newMemoryStore()
	producer := &captureProducer{}
	payments := NewPaymentService(store, producer, zap.NewNop())
	cart := NewCartService(store, store, zap.NewNop())
	checkout := NewCheckoutService(store, nil, zap.NewNop())

	userID := uuid.New()
	product := store.seedProduct("Denim Jacket", "100.00", true)
	require.Nil(t, cart.AddItem(context.Background(), userID, product.ID, 2))
	order, appErr := checkout.Begin(context.Background(), userID, "12 Main St")
	require.Nil(t, appErr)

	return store, producer, payments, userID, order
}

func TestPayRequiresMethod(t *testing.T) {
	_, _, payments, userID, order := newPaymentFixture(t)

	_, appErr := payments.Pay(context.Background(), userID, order.ID, "  ")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestPayUnknownOrder(t *testing.T) {
	_, _, payments, userID, _ := newPaymentFixture(t)

	_, appErr := payments.Pay(context.Background(), userID, uuid.New(), "card")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestPayForeignOrder(t *testing.T) {
	_, _, payments, _, order := newPaymentFixture(t)

	_, appErr := payments.Pay(context.Background(), uuid.New(), order.ID, "card")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestPaySettlesOrder(t *testing.T) {
	store, producer, payments, userID, order := newPaymentFixture(t)

	payment, appErr := payments.Pay(context.Background(), userID, order.ID, "card")
	require.Nil(t, appErr)

	assert.True(t, payment.Amount.Equal(order.Total), "amount %s, order total %s", payment.Amount, order.Total)
	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionRef, "TXN-"))

	settled, err := store.FindByIDAndUserID(context.Background(), order.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, settled.Status)
	assert.Equal(t, 1, producer.count())
}

func TestPayTwiceIsRejected(t *testing.T) {
	store, producer, payments, userID, order := newPaymentFixture(t)

	_, appErr := payments.Pay(context.Background(), userID, order.ID, "card")
	require.Nil(t, appErr)

	_, appErr = payments.Pay(context.Background(), userID, order.ID, "card")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)

	// The first settlement is untouched.
	payment, err := store.FindByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(order.Total))
	assert.Equal(t, 1, producer.count())
}
