package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetdelights/storefront/internal/service"
)

// CartHandler exposes the cart view contract: line mutation, promo codes,
// totals and checkout.
type CartHandler struct {
	Cart *service.Cart
}

func NewCartHandler(cart *service.Cart) *CartHandler {
	return &CartHandler{Cart: cart}
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
type setQuantityReq struct {
	Quantity int `json:"quantity"`
}
type promoReq struct {
	Code string `json:"code"`
}

// Get returns the full cart summary: lines, subtotal, discount, tax, total.
func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cart.GetSummary(c.Request().Context()))
}

// AddItem puts quantity units of a product into the cart (default 1).
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemReq
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request().Context()
	if err := h.Cart.AddItem(ctx, req.ProductID, req.Quantity); err != nil {
		return cartError(c, err)
	}
	return c.JSON(http.StatusOK, h.Cart.GetSummary(ctx))
}

// SetQuantity sets a line to an exact quantity; zero or less removes it.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req setQuantityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	if err := h.Cart.SetQuantity(ctx, c.Param("id"), req.Quantity); err != nil {
		return cartError(c, err)
	}
	return c.JSON(http.StatusOK, h.Cart.GetSummary(ctx))
}

// RemoveItem deletes a line. Unknown ids answer the same as removed ones.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.Cart.RemoveItem(ctx, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove item failed"})
	}
	return c.JSON(http.StatusOK, h.Cart.GetSummary(ctx))
}

// Clear empties the cart without producing an order.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.Cart.Clear(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear cart failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ApplyPromo activates a promo code from the fixed table.
func (h *CartHandler) ApplyPromo(c echo.Context) error {
	var req promoReq
	if err := c.Bind(&req); err != nil || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx := c.Request().Context()
	discount, err := h.Cart.ApplyPromoCode(ctx, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPromoCode):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrPromoAlreadyApplied):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "discount": discount})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "apply promo failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"discount": discount, "summary": h.Cart.GetSummary(ctx)})
}

// Checkout turns the cart into a confirmed order and resets the cart.
func (h *CartHandler) Checkout(c echo.Context) error {
	order, err := h.Cart.Checkout(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
	}
	return c.JSON(http.StatusCreated, order)
}

// cartError maps cart mutation failures to responses.
func cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrQuantityTooLarge):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart update failed"})
}
