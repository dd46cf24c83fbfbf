package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetdelights/storefront/internal/service"
)

// NewsletterHandler handles the footer subscribe form.
type NewsletterHandler struct {
	Newsletter *service.Newsletter
}

func NewNewsletterHandler(n *service.Newsletter) *NewsletterHandler {
	return &NewsletterHandler{Newsletter: n}
}

type subscribeReq struct {
	Email string `json:"email"`
}

// Subscribe adds the email to the list; subscribing twice is fine.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	if err := h.Newsletter.Subscribe(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "subscribe failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "thank you for subscribing to our newsletter"})
}
