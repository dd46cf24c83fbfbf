package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/store"
)

// fixtures shared by the cart tests. Croissant and Pain au Chocolat carry
// the exact prices the regression totals below are derived from.
func cartFixture(t *testing.T) (*Cart, *Catalog, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	products := []model.Product{
		{ID: "1", Name: "Croissant", Price: 8.99, Category: model.CategoryBread, Image: "images/croissant.jpg"},
		{ID: "2", Name: "Pain au Chocolat", Price: 6.49, Category: model.CategoryBread, Image: "images/pain-au-chocolat.jpg"},
		{ID: "100", Name: "Century Cake", Price: 100, Category: model.CategoryCake, Image: "images/century.jpg"},
	}
	require.NoError(t, st.Set(context.Background(), store.KeyProducts, products))

	catalog := NewCatalog(st)
	cart := NewCart(st, catalog, nil)
	catalog.AttachCart(cart)
	return cart, catalog, st
}

func TestAddItemCreatesAndIncrements(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "1", 1))
	require.NoError(t, cart.AddItem(ctx, "2", 2))
	require.NoError(t, cart.AddItem(ctx, "1", 1))

	lines := cart.Items(ctx)
	require.Len(t, lines, 2)
	assert.Equal(t, "Croissant", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, 4, cart.TotalItems(ctx))
}

func TestAddItemUnknownProduct(t *testing.T) {
	cart, _, _ := cartFixture(t)
	err := cart.AddItem(context.Background(), "nope", 1)
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, cart.Items(context.Background()))
}

func TestAddItemRespectsMaxQuantity(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "1", 10))
	err := cart.AddItem(ctx, "1", 1)
	require.ErrorIs(t, err, ErrQuantityTooLarge)
	assert.Equal(t, 10, cart.Items(ctx)[0].Quantity)

	// A fresh line cannot open above the bound either.
	err = cart.AddItem(ctx, "2", 11)
	require.ErrorIs(t, err, ErrQuantityTooLarge)
	require.Len(t, cart.Items(ctx), 1)
}

func TestSetQuantity(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()
	require.NoError(t, cart.AddItem(ctx, "1", 3))

	// In-range values are set exactly.
	require.NoError(t, cart.SetQuantity(ctx, "1", 7))
	assert.Equal(t, 7, cart.Items(ctx)[0].Quantity)

	// Above the bound: rejected, quantity unchanged.
	err := cart.SetQuantity(ctx, "1", 11)
	require.ErrorIs(t, err, ErrQuantityTooLarge)
	assert.Equal(t, 7, cart.Items(ctx)[0].Quantity)

	// Zero or negative removes the line.
	require.NoError(t, cart.SetQuantity(ctx, "1", 0))
	assert.Empty(t, cart.Items(ctx))
}

func TestRemoveItem(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()
	require.NoError(t, cart.AddItem(ctx, "1", 1))

	require.NoError(t, cart.RemoveItem(ctx, "1"))
	assert.Empty(t, cart.Items(ctx))

	// Removing again is a no-op.
	require.NoError(t, cart.RemoveItem(ctx, "1"))
}

func TestPromoCodeLifecycle(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()

	discount, err := cart.ApplyPromoCode(ctx, "  sweet10 ")
	require.NoError(t, err)
	assert.Equal(t, 10, discount)

	// Re-applying the active code is reported and changes nothing.
	discount, err = cart.ApplyPromoCode(ctx, "SWEET10")
	require.ErrorIs(t, err, ErrPromoAlreadyApplied)
	assert.Equal(t, 10, discount)

	// An unknown code leaves the prior discount in place.
	_, err = cart.ApplyPromoCode(ctx, "BOGUS")
	require.ErrorIs(t, err, ErrInvalidPromoCode)
	assert.Equal(t, 10, cart.GetSummary(ctx).DiscountPercent)

	// A different valid code replaces promo and discount together.
	discount, err = cart.ApplyPromoCode(ctx, "BAKERY15")
	require.NoError(t, err)
	assert.Equal(t, 15, discount)
	sum := cart.GetSummary(ctx)
	assert.Equal(t, "BAKERY15", sum.PromoCode)
	assert.Equal(t, 15, sum.DiscountPercent)
}

func TestTotalAppliesDiscountBeforeTax(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "100", 1))
	_, err := cart.ApplyPromoCode(ctx, "SWEET10")
	require.NoError(t, err)

	// 100 - 10% = 90; 90 * 8% tax = 7.2; total 97.2. Tax-then-discount
	// would give 97.2 only by coincidence of these numbers being nice —
	// the summary pins each intermediate figure to rule it out.
	assert.InDelta(t, 100.0, cart.Subtotal(ctx), 1e-9)
	sum := cart.GetSummary(ctx)
	assert.InDelta(t, 10.0, sum.DiscountAmount, 1e-9)
	assert.InDelta(t, 7.2, sum.Tax, 1e-9)
	assert.InDelta(t, 97.2, cart.Total(ctx), 1e-9)
}

func TestCheckout(t *testing.T) {
	cart, _, st := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "1", 1))
	require.NoError(t, cart.AddItem(ctx, "2", 2))

	order, err := cart.Checkout(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 21.97, order.Subtotal, 1e-9)
	assert.InDelta(t, 23.7276, order.Total, 1e-9)
	assert.Equal(t, model.StatusConfirmed, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Regexp(t, `^SD\d{6}$`, order.OrderNumber)

	// The order landed in the persisted history.
	var orders []model.Order
	require.NoError(t, st.Get(ctx, store.KeyOrders, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderNumber, orders[0].OrderNumber)

	// And the cart reset completely.
	sum := cart.GetSummary(ctx)
	assert.Empty(t, sum.Items)
	assert.Empty(t, sum.PromoCode)
	assert.Zero(t, sum.DiscountPercent)
}

func TestCheckoutWithPromoSnapshotsIt(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "100", 1))
	_, err := cart.ApplyPromoCode(ctx, "NEWBIE20")
	require.NoError(t, err)

	order, err := cart.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEWBIE20", order.PromoCode)
	assert.Equal(t, 20, order.DiscountPercent)
	assert.InDelta(t, 86.4, order.Total, 1e-9) // 80 + 8% tax

	// The next cart starts without the promo.
	assert.Zero(t, cart.GetSummary(ctx).DiscountPercent)
}

func TestCheckoutEmptyCart(t *testing.T) {
	cart, _, st := cartFixture(t)
	ctx := context.Background()

	_, err := cart.Checkout(ctx)
	require.ErrorIs(t, err, ErrEmptyCart)

	var orders []model.Order
	err = st.Get(ctx, store.KeyOrders, &orders)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClearDoesNotProduceOrder(t *testing.T) {
	cart, _, st := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "1", 2))
	_, err := cart.ApplyPromoCode(ctx, "WELCOME5")
	require.NoError(t, err)

	require.NoError(t, cart.Clear(ctx))
	sum := cart.GetSummary(ctx)
	assert.Empty(t, sum.Items)
	assert.Zero(t, sum.DiscountPercent)

	var orders []model.Order
	assert.ErrorIs(t, st.Get(ctx, store.KeyOrders, &orders), store.ErrNotFound)
}

func TestCartLinePriceFrozenAtAddTime(t *testing.T) {
	cart, _, st := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "1", 1))

	// Reprice the product in the catalog after the fact.
	var products []model.Product
	require.NoError(t, st.Get(ctx, store.KeyProducts, &products))
	products[0].Price = 99.99
	require.NoError(t, st.Set(ctx, store.KeyProducts, products))

	// The line keeps the price it was added at.
	assert.InDelta(t, 8.99, cart.Items(ctx)[0].Price, 1e-9)
	assert.InDelta(t, 8.99, cart.Subtotal(ctx), 1e-9)
}

func TestCartSurvivesCorruptState(t *testing.T) {
	cart, _, st := cartFixture(t)
	ctx := context.Background()

	st.SetRaw(store.KeyCart, []byte(`{"not":"a list"`))
	assert.Empty(t, cart.Items(ctx))

	// A mutation recovers by writing a fresh list.
	require.NoError(t, cart.AddItem(ctx, "1", 1))
	require.Len(t, cart.Items(ctx), 1)
}

func TestHistoryAccumulates(t *testing.T) {
	cart, _, _ := cartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddItem(ctx, "1", 1))
	_, err := cart.Checkout(ctx)
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(ctx, "2", 1))
	_, err = cart.Checkout(ctx)
	require.NoError(t, err)

	assert.Len(t, cart.History(ctx), 2)
}
