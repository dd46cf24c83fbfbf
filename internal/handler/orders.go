package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetdelights/storefront/internal/service"
)

// OrdersHandler exposes the persisted order history.
type OrdersHandler struct {
	Cart *service.Cart
}

func NewOrdersHandler(cart *service.Cart) *OrdersHandler {
	return &OrdersHandler{Cart: cart}
}

// List returns every order placed so far, oldest first.
func (h *OrdersHandler) List(c echo.Context) error {
	orders := h.Cart.History(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{
		"data":  orders,
		"total": len(orders),
	})
}
