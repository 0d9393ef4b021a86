package postgres

import (
	"context"
	"fmt"

	"prosalon-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder persists an order and its line items. Callers run this inside
// a transaction so the stock adjustments and the order land together.
func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	q := queriesFor(ctx, r.db)

	orderQuery := `
		INSERT INTO orders (id, user_id, status, subtotal, tax, shipping, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, orderQuery,
		order.ID, order.UserID, order.Status,
		float64ToNumeric(order.Subtotal), float64ToNumeric(order.Tax),
		float64ToNumeric(order.Shipping), float64ToNumeric(order.Total),
		order.CreatedAt)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Message: fmt.Sprintf("order %q already exists", order.ID)}
	}
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, sku, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range order.Items {
		_, err := q.Exec(ctx, itemQuery,
			item.ID, order.ID, item.ProductID, item.Name, item.SKU,
			float64ToNumeric(item.UnitPrice), item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := queriesFor(ctx, r.db)

	orderQuery := `
		SELECT id, user_id, status, subtotal, tax, shipping, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, orderQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		var subtotal, tax, shipping, total pgtype.Numeric
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &subtotal, &tax, &shipping, &total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Subtotal = numericToFloat64(subtotal)
		o.Tax = numericToFloat64(tax)
		o.Shipping = numericToFloat64(shipping)
		o.Total = numericToFloat64(total)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, sku, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := queriesFor(ctx, r.db).Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var (
			item  domain.OrderItem
			price pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.SKU, &price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.UnitPrice = numericToFloat64(price)
		items = append(items, item)
	}
	return items, rows.Err()
}
