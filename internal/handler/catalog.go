package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweetdelights/storefront/internal/service"
)

// CatalogHandler exposes product browsing to everyone and product
// management to admins.
type CatalogHandler struct {
	Catalog *service.Catalog
}

func NewCatalogHandler(cat *service.Catalog) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// addProductReq carries the add-product form. Price is a string on purpose:
// a bad value must surface as a field error, not a bind failure.
type addProductReq struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// List returns the filtered, sorted catalog view.
// Query: ?search=&category=&sort=name|price-low|price-high
func (h *CatalogHandler) List(c echo.Context) error {
	search := c.QueryParam("search")
	category := strings.TrimSpace(c.QueryParam("category"))
	sortKey := strings.TrimSpace(c.QueryParam("sort"))
	if sortKey == "" {
		sortKey = service.SortName
	}

	products := h.Catalog.FilterAndSort(c.Request().Context(), search, category, sortKey)
	return c.JSON(http.StatusOK, echo.Map{
		"data":  products,
		"total": len(products),
	})
}

// Get returns one product by id.
func (h *CatalogHandler) Get(c echo.Context) error {
	p, ok := h.Catalog.FindByID(c.Request().Context(), c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create validates and adds a product (admin only). Field failures come
// back aggregated so the form can mark every bad input at once.
func (h *CatalogHandler) Create(c echo.Context) error {
	var req addProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	p, err := h.Catalog.Add(c.Request().Context(), service.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": verrs.ByField()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add product failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// Delete removes a product (admin only) and cascades into the cart.
// Deleting an unknown id still answers 204: the end state is the same.
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.Catalog.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove product failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
