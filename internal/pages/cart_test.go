package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testathon/storefront-e2e/internal/pages/pagetest"
)

func TestCart_EmptyCart(t *testing.T) {
	sf := newStorefront()
	cart := sf.set().Cart

	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.IsIndicatorShowingItems())
	assert.Equal(t, 0, cart.ItemsCount())
	assert.Empty(t, cart.ItemNames())
	assert.Equal(t, CartSnapshot{ItemNames: []string{}, Empty: true}, cart.Snapshot())
}

func TestCart_ProductAdded(t *testing.T) {
	sf := newStorefront()
	set := sf.set()

	require.NoError(t, set.Listing.AddFirstProductToCart())
	name := set.Listing.FirstProductName()

	assert.Equal(t, 1, set.Cart.ItemCount())
	assert.True(t, set.Cart.IsIndicatorShowingItems())
	assert.True(t, set.Cart.VerifyMiniCartOpened())
	assert.True(t, set.Cart.VerifyProductAdded(name))
	assert.False(t, set.Cart.VerifyProductAdded("Pixel 5"))
	assert.Equal(t, 1, set.Cart.ItemsCount())
	assert.False(t, set.Cart.IsEmpty())

	snap := set.Cart.Snapshot()
	assert.Equal(t, 1, snap.ItemCount)
	assert.True(t, snap.Contains(name))
	assert.False(t, snap.Empty)
}

func TestCart_ReadsLeaveCartClosed(t *testing.T) {
	sf := newStorefront()
	set := sf.set()
	require.NoError(t, set.Listing.AddFirstProductToCart())

	set.Cart.ItemNames()

	_, open := sf.dom().Snapshot(miniCartCloseSelector)
	assert.False(t, open)
}

func TestCart_OpenCartIsIdempotent(t *testing.T) {
	sf := newStorefront()
	cart := sf.set().Cart

	require.NoError(t, cart.OpenCart())
	require.NoError(t, cart.OpenCart())
	assert.Equal(t, 1, sf.dom().Clicks(miniCartIconSelector))

	cart.CloseCart()
	cart.CloseCart()
	_, open := sf.dom().Snapshot(miniCartCloseSelector)
	assert.False(t, open)
}

func TestCart_UnreadableIndicatorFallsBack(t *testing.T) {
	sf := newStorefront()
	cart := sf.set().Cart

	sf.dom().Set(pagetest.Nth(pagetest.HasText(cartQuantitySelector, cartQuantityFilter), 0), pagetest.Visible("many"))
	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.IsEmpty())
}

func TestCart_OpenFailureDegrades(t *testing.T) {
	sf := newStorefront()
	set := sf.set()
	require.NoError(t, set.Listing.AddFirstProductToCart())
	set.Cart.CloseCart()
	sf.dom().Remove(miniCartIconSelector)

	assert.Error(t, set.Cart.OpenCart())
	assert.Empty(t, set.Cart.ItemNames())
	assert.Equal(t, 0, set.Cart.ItemsCount())
	assert.False(t, set.Cart.IsEmpty())
}

func TestCart_WaitForCartAndCheckout(t *testing.T) {
	sf := newStorefront()
	cart := sf.set().Cart

	require.NoError(t, cart.WaitForCartToLoad())
	cart.WaitForContentToUpdate(canceledContext())

	assert.Error(t, cart.ClickCheckout())
	sf.dom().Set(cartCheckoutSelector, pagetest.Visible("Checkout"))
	assert.NoError(t, cart.ClickCheckout())
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
