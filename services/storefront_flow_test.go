package services

import (
	"context"
	"net/http"
	"testing"

	"storefront/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Exercises the whole pipeline against one shared store: browse, fill the
// cart, check out, read the order back, pay, and verify the terminal state.
func TestStorefrontPurchaseFlow(t *testing.T) {
	store := newMemoryStore()
	logger := zap.NewNop()

	cart := NewCartService(store, store, logger)
	checkout := NewCheckoutService(store, nil, logger)
	payments := NewPaymentService(store, nil, logger)
	orders := NewOrderService(store, store, logger)
	catalog := NewCatalogService(store, nil, 0, logger)

	userID := uuid.New()
	jacket := store.seedProduct("Denim Jacket", "100.00", true)
	scarf := store.seedProduct("Wool Scarf", "50.00", true)

	ctx := context.Background()

	listed, appErr := catalog.ListProducts(ctx, nil)
	require.Nil(t, appErr)
	assert.Len(t, listed, 2)

	require.Nil(t, cart.AddItem(ctx, userID, jacket.ID, 2))
	require.Nil(t, cart.AddItem(ctx, userID, scarf.ID, 1))

	view, appErr := cart.GetCart(ctx, userID)
	require.Nil(t, appErr)
	assert.True(t, view.Subtotal.Equal(mustDecimal("250.00")), "subtotal %s", view.Subtotal)

	order, appErr := checkout.Begin(ctx, userID, "12 Main St")
	require.Nil(t, appErr)
	assert.True(t, order.Total.Equal(view.Subtotal), "order total must match the cart subtotal")

	// Checkout drains the cart.
	view, appErr = cart.GetCart(ctx, userID)
	require.Nil(t, appErr)
	assert.Empty(t, view.Items)

	// The order is visible on the read surface, unpaid.
	fetched, payment, appErr := orders.GetOrder(ctx, userID, order.ID)
	require.Nil(t, appErr)
	assert.Equal(t, models.OrderStatusCreated, fetched.Status)
	assert.Nil(t, payment)

	paid, appErr := payments.Pay(ctx, userID, order.ID, "card")
	require.Nil(t, appErr)
	assert.True(t, paid.Amount.Equal(order.Total))

	fetched, payment, appErr = orders.GetOrder(ctx, userID, order.ID)
	require.Nil(t, appErr)
	assert.Equal(t, models.OrderStatusPaid, fetched.Status)
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusSuccessful, payment.Status)

	// Settling the same order again is rejected.
	_, appErr = payments.Pay(ctx, userID, order.ID, "card")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)

	// Another user cannot see the order.
	_, _, appErr = orders.GetOrder(ctx, uuid.New(), order.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}
