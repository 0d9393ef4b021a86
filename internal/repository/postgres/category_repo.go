package postgres

import (
	"context"
	"errors"
	"fmt"

	"prosalon-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

// ListCategories returns every category record ordered by (level, name).
// The tree builder and resolver rely on this ordering for stable output.
func (r *categoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, slug, level, parent_id
		FROM categories
		ORDER BY level, name
	`

	rows, err := queriesFor(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Level, &c.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, slug, level, parent_id
		FROM categories
		WHERE id = $1
	`

	var c domain.Category
	err := queriesFor(ctx, r.db).QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Level, &c.ParentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, level, parent_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := queriesFor(ctx, r.db).Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Level, category.ParentID)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Message: fmt.Sprintf("category %q already exists", category.ID)}
	}
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id string) error {
	tag, err := queriesFor(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "category", ID: id}
	}
	return nil
}
