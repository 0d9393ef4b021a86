package domain

import (
	"context"
	"time"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem captures the audience-resolved unit price at the moment the
// line was created. Totals are computed from this snapshot, never from the
// product's current retail price.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Status    string      `json:"status"`
	Items     []OrderItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Shipping  float64     `json:"shipping"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CheckoutItem is one requested cart line at checkout.
type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrdersByUser(ctx context.Context, userID string) ([]Order, error)
}
