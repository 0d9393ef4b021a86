package usecase

import (
	"context"
	"time"

	"prosalon-backend/config"
	"prosalon-backend/internal/catalog"
	"prosalon-backend/internal/domain"
	"prosalon-backend/pkg/utils"
)

// OrderUsecase turns a checkout request into a priced order. Unit prices
// are resolved for the buyer's audience at line creation and persisted on
// the line; later retail price changes never reprice an existing order.
type OrderUsecase struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	tx       domain.TransactionManager
	cfg      *config.Config
}

func NewOrderUsecase(orders domain.OrderRepository, products domain.ProductRepository, tx domain.TransactionManager, cfg *config.Config) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		products: products,
		tx:       tx,
		cfg:      cfg,
	}
}

func (u *OrderUsecase) Checkout(ctx context.Context, user *domain.User, items []domain.CheckoutItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("cart is empty")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity for product %q must be positive", item.ProductID)
		}
	}

	audience := domain.AudienceForRole(user.Role)

	order := &domain.Order{
		ID:        utils.GenerateUUID(),
		UserID:    user.ID,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	err := u.tx.Do(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			product, err := u.products.GetProductByID(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NewValidationError("product %q does not exist", item.ProductID)
			}
			if product.Stock < item.Quantity {
				return domain.NewValidationError("insufficient stock for %q: %d available, %d requested",
					product.Name, product.Stock, item.Quantity)
			}

			resolved := catalog.ResolvePrice(*product, audience)
			order.Items = append(order.Items, domain.OrderItem{
				ID:        utils.GenerateUUID(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Name:      product.Name,
				SKU:       product.SKU,
				UnitPrice: catalog.RoundMoney(resolved.Displayed),
				Quantity:  item.Quantity,
			})

			if err := u.products.AdjustStock(txCtx, product.ID, -item.Quantity); err != nil {
				return err
			}
		}

		totals := catalog.OrderTotals(order.Items, u.cfg.TaxRate, u.cfg.ShippingFlatRate)
		order.Subtotal = totals.Subtotal
		order.Tax = totals.Tax
		order.Shipping = totals.Shipping
		order.Total = totals.Total

		return u.orders.CreateOrder(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (u *OrderUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.orders.GetOrdersByUser(ctx, userID)
}
