package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartFixture() (*memoryStore, CartService) {
	store := newMemoryStore()
	return store, NewCartService(store, store, zap.NewNop())
}

func TestAddItemMergesIntoExistingLine(t *testing.T) {
	store, svc := newCartFixture()
	userID := uuid.New()
	product := store.seedProduct("Denim Jacket", "89.90", true)

	require.Nil(t, svc.AddItem(context.Background(), userID, product.ID, 2))
	require.Nil(t, svc.AddItem(context.Background(), userID, product.ID, 3))

	assert.Equal(t, 1, store.cartLineCount(userID))
	line, ok := store.lineFor(userID, product.ID)
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	store, svc := newCartFixture()
	product := store.seedProduct("Denim Jacket", "89.90", true)

	appErr := svc.AddItem(context.Background(), uuid.New(), product.ID, 0)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestAddItemUnknownProduct(t *testing.T) {
	store, svc := newCartFixture()
	userID := uuid.New()

	appErr := svc.AddItem(context.Background(), userID, uuid.New(), 1)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, 0, store.cartLineCount(userID))
}

func TestAddItemInactiveProduct(t *testing.T) {
	store, svc := newCartFixture()
	userID := uuid.New()
	product := store.seedProduct("Retired Hoodie", "49.00", false)

	appErr := svc.AddItem(context.Background(), userID, product.ID, 1)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, 0, store.cartLineCount(userID))
}

func TestRemoveItemIgnoresForeignLines(t *testing.T) {
	store, svc := newCartFixture()
	owner := uuid.New()
	intruder := uuid.New()
	product := store.seedProduct("Denim Jacket", "89.90", true)

	require.Nil(t, svc.AddItem(context.Background(), owner, product.ID, 1))
	line, ok := store.lineFor(owner, product.ID)
	require.True(t, ok)

	appErr := svc.RemoveItem(context.Background(), intruder, line.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, 1, store.cartLineCount(owner))
}

func TestSetQuantityRemovesLineWhenZero(t *testing.T) {
	store, svc := newCartFixture()
	userID := uuid.New()
	product := store.seedProduct("Denim Jacket", "89.90", true)

	require.Nil(t, svc.AddItem(context.Background(), userID, product.ID, 2))
	line, ok := store.lineFor(userID, product.ID)
	require.True(t, ok)

	require.Nil(t, svc.SetQuantity(context.Background(), userID, line.ID, 0))
	assert.Equal(t, 0, store.cartLineCount(userID))
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	store, svc := newCartFixture()
	userID := uuid.New()
	product := store.seedProduct("Denim Jacket", "89.90", true)

	require.Nil(t, svc.AddItem(context.Background(), userID, product.ID, 2))
	line, ok := store.lineFor(userID, product.ID)
	require.True(t, ok)

	require.Nil(t, svc.SetQuantity(context.Background(), userID, line.ID, 7))
	updated, ok := store.lineFor(userID, product.ID)
	require.True(t, ok)
	assert.Equal(t, 7, updated.Quantity)
}

func TestGetCartComputesSubtotal(t *testing.T) {
	store, svc := newCartFixture()
	userID := uuid.New()
	jacket := store.seedProduct("Denim Jacket", "100.00", true)
	scarf := store.seedProduct("Wool Scarf", "50.00", true)

	require.Nil(t, svc.AddItem(context.Background(), userID, jacket.ID, 2))
	require.Nil(t, svc.AddItem(context.Background(), userID, scarf.ID, 1))

	cart, appErr := svc.GetCart(context.Background(), userID)
	require.Nil(t, appErr)
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Subtotal.Equal(mustDecimal("250.00")),
		"subtotal %s", cart.Subtotal)
}

func TestGetCartEmptyIsNotAnError(t *testing.T) {
	_, svc := newCartFixture()

	cart, appErr := svc.GetCart(context.Background(), uuid.New())
	require.Nil(t, appErr)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}
