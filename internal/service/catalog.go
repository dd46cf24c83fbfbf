package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/store"
)

// Sort keys accepted by FilterAndSort. Name ascending is the default.
const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

var imageExtensions = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

// CartCascade is the hook Remove uses to delete matching cart lines when a
// product leaves the catalog.
type CartCascade interface {
	RemoveItem(ctx context.Context, productID string) error
}

// ProductInput carries the raw field values of an add-product request.
// Price arrives as a string so that parse failures surface as a field
// error, not a bind error.
type ProductInput struct {
	Name        string
	Price       string
	Category    string
	Image       string
	Description string
}

// Catalog owns the purchasable product list.
type Catalog struct {
	st       store.Store
	cart     CartCascade
	collator *collate.Collator
}

// NewCatalog returns a catalog reading and writing through st.
func NewCatalog(st store.Store) *Catalog {
	return &Catalog{
		st:       st,
		collator: collate.New(language.English, collate.Loose),
	}
}

// AttachCart wires the cascade target. Without one, Remove still deletes
// the product but leaves cart lines alone.
func (c *Catalog) AttachCart(cart CartCascade) { c.cart = cart }

// Add validates every field, collecting one error per failed field, then
// prepends the product (newest-first) and persists the full list.
func (c *Catalog) Add(ctx context.Context, in ProductInput) (model.Product, error) {
	var verrs ValidationErrors

	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		verrs = append(verrs, FieldError{"name", "product name must be at least 2 characters long"})
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || price <= 0 {
		verrs = append(verrs, FieldError{"price", "please enter a valid price greater than 0"})
	}
	if !model.ValidCategory(in.Category) {
		verrs = append(verrs, FieldError{"category", "please select a category"})
	}
	image := strings.TrimSpace(in.Image)
	if !validImageURL(image) {
		verrs = append(verrs, FieldError{"image", "please enter a valid image URL"})
	}
	if len(verrs) > 0 {
		return model.Product{}, verrs
	}

	p := model.Product{
		ID:          newProductID(),
		Name:        name,
		Price:       price,
		Category:    in.Category,
		Image:       image,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   time.Now().UTC(),
	}
	products := append([]model.Product{p}, c.loadProducts(ctx)...)
	if err := c.st.Set(ctx, store.KeyProducts, products); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Remove deletes the product and cascades into the cart. Removing an
// unknown id is a no-op.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	products := c.loadProducts(ctx)
	kept := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil
	}
	if err := c.st.Set(ctx, store.KeyProducts, kept); err != nil {
		return err
	}
	if c.cart != nil {
		if err := c.cart.RemoveItem(ctx, id); err != nil {
			log.Printf("catalog: cart cascade for product %s: %v", id, err)
		}
	}
	return nil
}

// FindByID looks a product up by id.
func (c *Catalog) FindByID(ctx context.Context, id string) (model.Product, bool) {
	for _, p := range c.loadProducts(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// FilterAndSort returns a derived view of the catalog: case-insensitive
// substring match against name or description, exact category match when
// category is non-empty, sorted by the given key. The stored list is never
// reordered.
func (c *Catalog) FilterAndSort(ctx context.Context, search, category, sortKey string) []model.Product {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Product, 0)
	for _, p := range c.loadProducts(ctx) {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	switch sortKey {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default: // SortName
		sort.SliceStable(out, func(i, j int) bool {
			return c.collator.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

// loadProducts reads the catalog, treating a missing or corrupt key as
// empty.
func (c *Catalog) loadProducts(ctx context.Context) []model.Product {
	var products []model.Product
	if err := c.st.Get(ctx, store.KeyProducts, &products); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("catalog: unreadable product list: %v", err)
		}
		return nil
	}
	return products
}

// validImageURL accepts a syntactically valid http(s) URL that either ends
// in an image extension or lives on a known image host.
func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	return imageExtensions.MatchString(u.Path) ||
		strings.Contains(raw, "pexels.com") ||
		strings.Contains(raw, "unsplash.com") ||
		strings.Contains(raw, "images.") ||
		strings.Contains(raw, "cdn.")
}

// newProductID mirrors the storefront's compact ids: the creation time in
// base 36 plus a short random suffix.
func newProductID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(buf)
}
