package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/store"
)

// defaultProducts is the bakery's launch menu, installed the first time the
// catalog is used. IDs are stable so demo links keep working.
func defaultProducts(now time.Time) []model.Product {
	return []model.Product{
		{ID: "1", Name: "Croissant", Price: 8.99, Category: model.CategoryBread, Image: "images/croissant.jpg", Description: "Traditional sourdough with a crispy crust and tangy flavor", CreatedAt: now},
		{ID: "2", Name: "Pain au Chocolat", Price: 6.49, Category: model.CategoryBread, Image: "images/pain-au-chocolat.jpg", Description: "Nutritious whole wheat bread perfect for sandwiches", CreatedAt: now},
		{ID: "3", Name: "Pain aux Raisins", Price: 4.99, Category: model.CategoryBread, Image: "images/pain aux raisins.jpg", Description: "Classic French baguette with a golden crust", CreatedAt: now},
		{ID: "4", Name: "Apple Turnover", Price: 3.99, Category: model.CategoryPastry, Image: "images/Apple-Turnover.jpg", Description: "Flaky pastry filled with spiced apples", CreatedAt: now},
		{ID: "5", Name: "Cherry Cream Cheese Danish", Price: 4.49, Category: model.CategoryPastry, Image: "images/Cherry-Cream-Cheese-Danish.jpg", Description: "Sweet pastry filled with rich Cherry", CreatedAt: now},
		{ID: "6", Name: "Sugar Pursuit", Price: 3.79, Category: model.CategoryPastry, Image: "images/Sugar-Pursuit.jpg", Description: "Flaky pastry filled with rich Sugar", CreatedAt: now},
		{ID: "7", Name: "Chocolate Layer Cake", Price: 24.99, Category: model.CategoryCake, Image: "images/Chocolate-Layer-Cake.jpg", Description: "Rich chocolate cake with creamy frosting", CreatedAt: now},
		{ID: "8", Name: "Red Velvet Cupcakes (6-pack)", Price: 18.99, Category: model.CategoryCake, Image: "images/Red-Velvet-Cupcakes.jpg", Description: "Classic red velvet cupcakes with cream cheese frosting", CreatedAt: now},
		{ID: "9", Name: "Cheesecake Slice", Price: 6.99, Category: model.CategoryCake, Image: "images/Cheesecake-Slice.jpg", Description: "Creamy New York style cheesecake", CreatedAt: now},
		{ID: "10", Name: "Premium Coffee Blend", Price: 12.99, Category: model.CategoryBeverage, Image: "images/Premium-Coffee-Blend.jpg", Description: "Our signature coffee blend, freshly roasted", CreatedAt: now},
		{ID: "11", Name: "Herbal Tea Selection", Price: 8.99, Category: model.CategoryBeverage, Image: "images/Herbal-Tea-Selection.jpg", Description: "Assorted herbal teas for relaxation", CreatedAt: now},
		{ID: "12", Name: "Fresh Orange Juice", Price: 4.99, Category: model.CategoryBeverage, Image: "images/Fresh-Orange-Juice.jpg", Description: "Freshly squeezed orange juice", CreatedAt: now},
	}
}

// EnsureSeed installs the default menu when the product list has never been
// written. Calling it again is a no-op.
func (c *Catalog) EnsureSeed(ctx context.Context) error {
	var products []model.Product
	err := c.st.Get(ctx, store.KeyProducts, &products)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("catalog: unreadable product list, reseeding: %v", err)
	}
	return c.st.Set(ctx, store.KeyProducts, defaultProducts(time.Now().UTC()))
}
