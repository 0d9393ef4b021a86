package usecase

import (
	"context"
	"testing"

	"prosalon-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderUsecase(prods *fakeProductRepo) (*OrderUsecase, *fakeOrderRepo) {
	orders := &fakeOrderRepo{}
	return NewOrderUsecase(orders, prods, fakeTxManager{}, testConfig()), orders
}

func checkoutProducts() *fakeProductRepo {
	return newFakeProductRepo(
		domain.Product{ID: "p-serum", Name: "Keratin Serum", SKU: "SER-01", RetailPrice: 50, DealerPrice: f64Ptr(35), Stock: 10, CategoryID: "cat-cleansers"},
		domain.Product{ID: "p-mask", Name: "Clay Mask", SKU: "MSK-01", RetailPrice: 18, Stock: 2, CategoryID: "cat-clay"},
	)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uc, _ := newTestOrderUsecase(checkoutProducts())

	_, err := uc.Checkout(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleCustomer}, nil)
	assert.True(t, domain.IsValidation(err))
}

func TestCheckoutNonPositiveQuantity(t *testing.T) {
	uc, _ := newTestOrderUsecase(checkoutProducts())

	_, err := uc.Checkout(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleCustomer},
		[]domain.CheckoutItem{{ProductID: "p-serum", Quantity: 0}})
	assert.True(t, domain.IsValidation(err))
}

func TestCheckoutUnknownProduct(t *testing.T) {
	uc, _ := newTestOrderUsecase(checkoutProducts())

	_, err := uc.Checkout(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleCustomer},
		[]domain.CheckoutItem{{ProductID: "missing", Quantity: 1}})
	assert.True(t, domain.IsValidation(err))
}

func TestCheckoutInsufficientStock(t *testing.T) {
	uc, _ := newTestOrderUsecase(checkoutProducts())

	_, err := uc.Checkout(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleCustomer},
		[]domain.CheckoutItem{{ProductID: "p-mask", Quantity: 3}})
	assert.True(t, domain.IsValidation(err))
}

func TestCheckoutRetailCustomer(t *testing.T) {
	prods := checkoutProducts()
	uc, orders := newTestOrderUsecase(prods)

	order, err := uc.Checkout(context.Background(), &domain.User{ID: "u-1", Role: domain.RoleCustomer},
		[]domain.CheckoutItem{
			{ProductID: "p-serum", Quantity: 2},
			{ProductID: "p-mask", Quantity: 1},
		})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 50.0, order.Items[0].UnitPrice, "retail customers pay retail")
	assert.Equal(t, 18.0, order.Items[1].UnitPrice)
	assert.Equal(t, "Keratin Serum", order.Items[0].Name)
	assert.Equal(t, "SER-01", order.Items[0].SKU)

	// subtotal 118, tax 13%, shipping flat 5
	assert.Equal(t, 118.0, order.Subtotal)
	assert.Equal(t, 15.34, order.Tax)
	assert.Equal(t, 5.0, order.Shipping)
	assert.Equal(t, 138.34, order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	// Stock was decremented inside the transaction.
	serum, _ := prods.GetProductByID(context.Background(), "p-serum")
	assert.Equal(t, 8, serum.Stock)

	require.Len(t, orders.orders, 1)
	assert.Equal(t, order.ID, orders.orders[0].ID)
}

func TestCheckoutDealerPricing(t *testing.T) {
	uc, _ := newTestOrderUsecase(checkoutProducts())

	order, err := uc.Checkout(context.Background(), &domain.User{ID: "u-dealer", Role: domain.RoleDealer},
		[]domain.CheckoutItem{{ProductID: "p-serum", Quantity: 1}})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 35.0, order.Items[0].UnitPrice, "dealers pay the dealer price")
	assert.Equal(t, 35.0, order.Subtotal)
}

func TestCheckoutPriceSnapshotSurvivesRepricing(t *testing.T) {
	prods := checkoutProducts()
	uc, orders := newTestOrderUsecase(prods)
	ctx := context.Background()

	order, err := uc.Checkout(ctx, &domain.User{ID: "u-1", Role: domain.RoleCustomer},
		[]domain.CheckoutItem{{ProductID: "p-serum", Quantity: 1}})
	require.NoError(t, err)

	// Reprice the product after checkout; the stored line keeps its snapshot.
	serum := prods.products["p-serum"]
	serum.RetailPrice = 99
	prods.products["p-serum"] = serum

	stored, err := orders.GetOrdersByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 50.0, stored[0].Items[0].UnitPrice)
	assert.Equal(t, order.Total, stored[0].Total)
}

func TestGetMyOrdersFiltersByUser(t *testing.T) {
	uc, orders := newTestOrderUsecase(checkoutProducts())
	ctx := context.Background()

	orders.orders = []domain.Order{
		{ID: "o-1", UserID: "u-1"},
		{ID: "o-2", UserID: "u-2"},
	}

	mine, err := uc.GetMyOrders(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "o-1", mine[0].ID)
}
