package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/store"
)

// TaxRate is applied to the discounted subtotal. The order of operations —
// discount first, then tax — is a contract: it changes the result.
const TaxRate = 0.08

// promoCodes is the fixed table of accepted codes and their discount
// percentages.
var promoCodes = map[string]int{
	"SWEET10":  10,
	"BAKERY15": 15,
	"NEWBIE20": 20,
	"WELCOME5": 5,
}

// ProductFinder resolves a product id at add-to-cart time. The catalog
// satisfies it.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (model.Product, bool)
}

// OrderPublisher receives the order snapshot after a successful checkout.
// Publishing is best-effort; failures must not fail the checkout.
type OrderPublisher interface {
	PublishOrderConfirmed(ctx context.Context, o model.Order) error
}

// Summary is the cart-view contract: every figure the cart page renders.
type Summary struct {
	Items           []model.CartLine `json:"items"`
	TotalItems      int              `json:"totalItems"`
	Subtotal        float64          `json:"subtotal"`
	DiscountPercent int              `json:"discount"`
	DiscountAmount  float64          `json:"discountAmount"`
	PromoCode       string           `json:"promoCode,omitempty"`
	Tax             float64          `json:"tax"`
	Total           float64          `json:"total"`
}

// Cart owns the line items and the active promo code. Lines persist under
// the `cart` key; the promo lives only for the lifetime of the service
// instance and is reset by checkout and Clear.
type Cart struct {
	st       store.Store
	products ProductFinder
	events   OrderPublisher

	mu              sync.Mutex
	promoCode       string
	discountPercent int
}

// NewCart returns a cart over st resolving products through finder. events
// may be nil when no broker is configured.
func NewCart(st store.Store, finder ProductFinder, events OrderPublisher) *Cart {
	return &Cart{st: st, products: finder, events: events}
}

// AddItem resolves the product and adds qty units to its line, creating the
// line when absent. The per-line maximum applies on add exactly as on
// SetQuantity: an add that would push the line past the bound is rejected
// and leaves the cart unchanged.
func (c *Cart) AddItem(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, ok := c.products.FindByID(ctx, productID)
	if !ok {
		return ErrProductNotFound
	}

	lines := c.loadLines(ctx)
	for i := range lines {
		if lines[i].ProductID == productID {
			if lines[i].Quantity+qty > model.MaxLineQuantity {
				return ErrQuantityTooLarge
			}
			lines[i].Quantity += qty
			return c.st.Set(ctx, store.KeyCart, lines)
		}
	}
	if qty > model.MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	lines = append(lines, model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Image:     p.Image,
		Quantity:  qty,
	})
	return c.st.Set(ctx, store.KeyCart, lines)
}

// RemoveItem deletes the line for productID. Unknown ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	lines := c.loadLines(ctx)
	kept := lines[:0]
	found := false
	for _, l := range lines {
		if l.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil
	}
	return c.st.Set(ctx, store.KeyCart, kept)
}

// SetQuantity sets the line to exactly q. q <= 0 removes the line; q above
// the per-line maximum is rejected with the quantity unchanged.
func (c *Cart) SetQuantity(ctx context.Context, productID string, q int) error {
	if q <= 0 {
		return c.RemoveItem(ctx, productID)
	}
	if q > model.MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	lines := c.loadLines(ctx)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = q
			return c.st.Set(ctx, store.KeyCart, lines)
		}
	}
	return ErrProductNotFound
}

// ApplyPromoCode activates a code from the fixed table. A valid new code
// replaces any prior one together with its discount; re-applying the active
// code and unknown codes both leave the current discount untouched.
func (c *Cart) ApplyPromoCode(ctx context.Context, code string) (int, error) {
	normalized := normalizePromo(code)
	discount, ok := promoCodes[normalized]
	if !ok {
		return 0, ErrInvalidPromoCode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.promoCode == normalized {
		return c.discountPercent, ErrPromoAlreadyApplied
	}
	c.promoCode = normalized
	c.discountPercent = discount
	return discount, nil
}

// Items returns the lines in insertion order.
func (c *Cart) Items(ctx context.Context) []model.CartLine {
	return c.loadLines(ctx)
}

// TotalItems sums the quantities across all lines (the cart badge count).
func (c *Cart) TotalItems(ctx context.Context) int {
	n := 0
	for _, l := range c.loadLines(ctx) {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of price times quantity over all lines.
func (c *Cart) Subtotal(ctx context.Context) float64 {
	return subtotalOf(c.loadLines(ctx))
}

// Total applies the discount to the subtotal and then tax to the
// discounted amount.
func (c *Cart) Total(ctx context.Context) float64 {
	c.mu.Lock()
	discount := c.discountPercent
	c.mu.Unlock()
	return totalOf(subtotalOf(c.loadLines(ctx)), discount)
}

// GetSummary assembles everything the cart view renders in one call.
func (c *Cart) GetSummary(ctx context.Context) Summary {
	lines := c.loadLines(ctx)
	c.mu.Lock()
	promo, discount := c.promoCode, c.discountPercent
	c.mu.Unlock()

	subtotal := subtotalOf(lines)
	discountAmount := subtotal * float64(discount) / 100
	discounted := subtotal - discountAmount
	tax := discounted * TaxRate

	return Summary{
		Items:           lines,
		TotalItems:      totalItemsOf(lines),
		Subtotal:        subtotal,
		DiscountPercent: discount,
		DiscountAmount:  discountAmount,
		PromoCode:       promo,
		Tax:             tax,
		Total:           discounted + tax,
	}
}

// Checkout snapshots the cart into an immutable Order, appends it to the
// order history and resets the cart. The reset happens unconditionally once
// the order is persisted; the confirmation event is published afterwards,
// best-effort.
func (c *Cart) Checkout(ctx context.Context) (model.Order, error) {
	lines := c.loadLines(ctx)
	if len(lines) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	c.mu.Lock()
	promo, discount := c.promoCode, c.discountPercent
	c.mu.Unlock()

	items := make([]model.CartLine, len(lines))
	copy(items, lines)

	now := time.Now().UTC()
	subtotal := subtotalOf(items)
	order := model.Order{
		OrderNumber:     orderNumber(now),
		Items:           items,
		Subtotal:        subtotal,
		DiscountPercent: discount,
		PromoCode:       promo,
		Total:           totalOf(subtotal, discount),
		Date:            now,
		Status:          model.StatusConfirmed,
	}

	orders := c.loadOrders(ctx)
	orders = append(orders, order)
	if err := c.st.Set(ctx, store.KeyOrders, orders); err != nil {
		return model.Order{}, err
	}
	if err := c.reset(ctx); err != nil {
		return model.Order{}, err
	}

	if c.events != nil {
		if err := c.events.PublishOrderConfirmed(ctx, order); err != nil {
			log.Printf("cart: publish order %s: %v", order.OrderNumber, err)
		}
	}
	return order, nil
}

// Clear empties the cart without producing an order.
func (c *Cart) Clear(ctx context.Context) error {
	return c.reset(ctx)
}

// History returns every order placed so far, oldest first.
func (c *Cart) History(ctx context.Context) []model.Order {
	return c.loadOrders(ctx)
}

func (c *Cart) reset(ctx context.Context) error {
	if err := c.st.Set(ctx, store.KeyCart, []model.CartLine{}); err != nil {
		return err
	}
	c.mu.Lock()
	c.promoCode = ""
	c.discountPercent = 0
	c.mu.Unlock()
	return nil
}

func (c *Cart) loadLines(ctx context.Context) []model.CartLine {
	var lines []model.CartLine
	if err := c.st.Get(ctx, store.KeyCart, &lines); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("cart: unreadable cart: %v", err)
		}
		return nil
	}
	return lines
}

func (c *Cart) loadOrders(ctx context.Context) []model.Order {
	var orders []model.Order
	if err := c.st.Get(ctx, store.KeyOrders, &orders); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("cart: unreadable order history: %v", err)
		}
		return nil
	}
	return orders
}

func subtotalOf(lines []model.CartLine) float64 {
	sum := 0.0
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

func totalItemsOf(lines []model.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// totalOf is discount-then-tax: the discounted subtotal plus tax on that
// discounted amount.
func totalOf(subtotal float64, discountPercent int) float64 {
	discounted := subtotal - subtotal*float64(discountPercent)/100
	return discounted + discounted*TaxRate
}

// orderNumber derives the "SD"-prefixed number from the current time, the
// last six digits of the millisecond timestamp.
func orderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	return "SD" + ms[len(ms)-6:]
}

func normalizePromo(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
