package usecase

import (
	"context"
	"sort"

	"prosalon-backend/internal/domain"
)

// Hand-rolled fakes backed by maps; each test builds its own instances so
// state never leaks between cases.

type fakeCategoryRepo struct {
	categories []domain.Category
	createErrs []error
	listCalls  int
}

func (f *fakeCategoryRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.listCalls++
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeCategoryRepo) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) CreateCategory(ctx context.Context, category *domain.Category) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryRepo) DeleteCategory(ctx context.Context, id string) error {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Entity: "category", ID: id}
}

type fakeProductRepo struct {
	products   map[string]domain.Product
	createErrs []error
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *domain.Product) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return &domain.NotFoundError{Entity: "product", ID: product.ID}
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) AdjustStock(ctx context.Context, productID string, delta int) error {
	p, ok := f.products[productID]
	if !ok || p.Stock+delta < 0 {
		return domain.NewValidationError("insufficient stock for product %q", productID)
	}
	p.Stock += delta
	f.products[productID] = p
	return nil
}

type fakeOrderRepo struct {
	orders []domain.Order
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// fakeTxManager runs the function directly; rollback semantics are covered
// by the postgres implementation.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
