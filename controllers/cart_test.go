package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"veloura/models"
)

func newTestProduct(stock int) *models.Product {
	return &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Test Chain",
		Price: 1200,
		Stock: stock,
	}
}

func TestAddToCartCreatesLineAtQuantityOne(t *testing.T) {
	user := &models.User{}
	product := newTestProduct(5)

	message, ok := addToCart(user, product)

	assert.True(t, ok)
	assert.Equal(t, "Added to cart.", message)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 1, user.Cart[0].Quantity)
	assert.Equal(t, product.ID, user.Cart[0].Product)
}

func TestAddToCartCapsAtStock(t *testing.T) {
	user := &models.User{}
	product := newTestProduct(2)

	// First two adds succeed, the third reports the stock bound.
	_, ok := addToCart(user, product)
	assert.True(t, ok)
	_, ok = addToCart(user, product)
	assert.True(t, ok)

	message, ok := addToCart(user, product)
	assert.False(t, ok)
	assert.Equal(t, "Sorry, only 2 items available in stock.", message)
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 2, user.Cart[0].Quantity)
}

func TestAddToCartOutOfStock(t *testing.T) {
	user := &models.User{}
	product := newTestProduct(0)

	message, ok := addToCart(user, product)

	assert.False(t, ok)
	assert.Equal(t, "Sorry, this product is out of stock.", message)
	assert.Empty(t, user.Cart)
}

func TestApplyCartActionIncrease(t *testing.T) {
	product := newTestProduct(3)
	user := &models.User{Cart: []models.CartItem{{Product: product.ID, Quantity: 1}}}

	message, ok := applyCartAction(user, product, "increase")

	assert.True(t, ok)
	assert.Equal(t, "Cart updated.", message)
	assert.Equal(t, 2, user.Cart[0].Quantity)
}

func TestApplyCartActionIncreaseCappedByStock(t *testing.T) {
	product := newTestProduct(2)
	user := &models.User{Cart: []models.CartItem{{Product: product.ID, Quantity: 2}}}

	message, ok := applyCartAction(user, product, "increase")

	assert.False(t, ok)
	assert.Equal(t, "Sorry, only 2 items available in stock.", message)
	assert.Equal(t, 2, user.Cart[0].Quantity)
}

func TestApplyCartActionDecreaseFlooredAtOne(t *testing.T) {
	product := newTestProduct(5)
	user := &models.User{Cart: []models.CartItem{{Product: product.ID, Quantity: 1}}}

	message, ok := applyCartAction(user, product, "decrease")

	assert.False(t, ok)
	assert.Equal(t, "Minimum quantity is 1. Use delete to remove item.", message)
	// The line stays, it is never auto-removed.
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 1, user.Cart[0].Quantity)
}

func TestApplyCartActionDecrease(t *testing.T) {
	product := newTestProduct(5)
	user := &models.User{Cart: []models.CartItem{{Product: product.ID, Quantity: 3}}}

	message, ok := applyCartAction(user, product, "decrease")

	assert.True(t, ok)
	assert.Equal(t, "Cart updated.", message)
	assert.Equal(t, 2, user.Cart[0].Quantity)
}

func TestApplyCartActionUnknownLineOrAction(t *testing.T) {
	product := newTestProduct(5)
	user := &models.User{}

	message, ok := applyCartAction(user, product, "increase")
	assert.False(t, ok)
	assert.Empty(t, message)

	user.Cart = []models.CartItem{{Product: product.ID, Quantity: 2}}
	message, ok = applyCartAction(user, product, "duplicate")
	assert.False(t, ok)
	assert.Empty(t, message)
	assert.Equal(t, 2, user.Cart[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	keep := newTestProduct(5)
	drop := newTestProduct(5)
	user := &models.User{Cart: []models.CartItem{
		{Product: keep.ID, Quantity: 2},
		{Product: drop.ID, Quantity: 1},
	}}

	removeFromCart(user, drop.ID)

	require.Len(t, user.Cart, 1)
	assert.Equal(t, keep.ID, user.Cart[0].Product)

	// Removing an absent product is a no-op.
	removeFromCart(user, drop.ID)
	assert.Len(t, user.Cart, 1)
}
