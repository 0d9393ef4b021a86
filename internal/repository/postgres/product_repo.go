package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"prosalon-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

// --- Numeric helpers ---

func numericToFloat64(n pgtype.Numeric) float64 {
	if !n.Valid {
		return 0
	}
	f, _ := n.Float64Value()
	return f.Float64
}

func numericToFloat64Ptr(n pgtype.Numeric) *float64 {
	if !n.Valid {
		return nil
	}
	f, _ := n.Float64Value()
	val := f.Float64
	return &val
}

func float64ToNumeric(f float64) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(strconv.FormatFloat(f, 'f', -1, 64))
	return n
}

func float64PtrToNumeric(f *float64) pgtype.Numeric {
	var n pgtype.Numeric
	if f != nil {
		_ = n.Scan(strconv.FormatFloat(*f, 'f', -1, 64))
	}
	return n
}

const productColumns = `id, name, description, sku, retail_price, dealer_price, stock, category_id, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p           domain.Product
		retail      pgtype.Numeric
		dealer      pgtype.Numeric
		description *string
	)
	err := row.Scan(&p.ID, &p.Name, &description, &p.SKU, &retail, &dealer,
		&p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	if description != nil {
		p.Description = *description
	}
	p.RetailPrice = numericToFloat64(retail)
	p.DealerPrice = numericToFloat64Ptr(dealer)
	return p, nil
}

// ListProducts returns products newest-first. An empty categoryID returns
// the whole catalog; fine-grained filtering happens in the query engine.
func (r *productRepository) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE ($1 = '' OR category_id = $1)
		ORDER BY created_at DESC, id
	`, productColumns)

	rows, err := queriesFor(ctx, r.db).Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(queriesFor(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, retail_price, dealer_price, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := queriesFor(ctx, r.db).Exec(ctx, query,
		product.ID, product.Name, product.Description, product.SKU,
		float64ToNumeric(product.RetailPrice), float64PtrToNumeric(product.DealerPrice),
		product.Stock, product.CategoryID, product.CreatedAt, product.UpdatedAt)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Message: fmt.Sprintf("product %q already exists", product.ID)}
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, sku = $4, retail_price = $5,
		    dealer_price = $6, stock = $7, category_id = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := queriesFor(ctx, r.db).Exec(ctx, query,
		product.ID, product.Name, product.Description, product.SKU,
		float64ToNumeric(product.RetailPrice), float64PtrToNumeric(product.DealerPrice),
		product.Stock, product.CategoryID, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: product.ID}
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := queriesFor(ctx, r.db).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// AdjustStock applies a delta atomically; the guard keeps stock from going
// negative under concurrent checkouts.
func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int) error {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
	`

	tag, err := queriesFor(ctx, r.db).Exec(ctx, query, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewValidationError("insufficient stock for product %q", productID)
	}
	return nil
}
