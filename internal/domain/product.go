package domain

import (
	"context"
	"time"
)

// Product carries both audience prices independently: RetailPrice is the
// public price, DealerPrice the trade cost (absent for retail-only items).
// Neither is derived from the other; dealer may legitimately exceed retail.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	RetailPrice float64   `json:"retailPrice"`
	DealerPrice *float64  `json:"dealerPrice,omitempty"`
	Stock       int       `json:"stock"`
	CategoryID  string    `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ResolvedPrice is the audience-correct price for one product: the number
// to display plus an optional struck-through reference (retail, shown to
// dealers when their cost differs).
type ResolvedPrice struct {
	Displayed float64  `json:"displayed"`
	Reference *float64 `json:"reference,omitempty"`
}

// PricedProduct is the catalog-facing product view with the audience price
// already applied. Raw price pairs never leave the admin surface.
type PricedProduct struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	SKU            string    `json:"sku"`
	Price          float64   `json:"price"`
	CompareAtPrice *float64  `json:"compareAtPrice,omitempty"`
	Stock          int       `json:"stock"`
	CategoryID     string    `json:"categoryId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProductFilter is the catalog browse filter. Category tokens may be ids,
// slugs, or legacy display names; deeper tokens are resolved within the
// subtree of the shallower match and the deepest resolved level wins.
type ProductFilter struct {
	CategoryToken          string
	SubcategoryToken       string
	SecondSubcategoryToken string
	Search                 string
	MinPrice               *float64
	MaxPrice               *float64
	Page                   int
	PageSize               int
}

// ProductPage is one stable, ordered page of filtered catalog results.
type ProductPage struct {
	Items      []Product  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type ProductRepository interface {
	// ListProducts returns products ordered newest-first. An empty
	// categoryID returns the whole catalog.
	ListProducts(ctx context.Context, categoryID string) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id string) error
	// AdjustStock applies a delta, failing when stock would go negative.
	AdjustStock(ctx context.Context, productID string, delta int) error
}
