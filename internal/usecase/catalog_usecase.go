package usecase

import (
	"context"
	"errors"
	"time"

	"prosalon-backend/config"
	"prosalon-backend/internal/catalog"
	"prosalon-backend/internal/domain"
	"prosalon-backend/pkg/cache"
	"prosalon-backend/pkg/utils"
)

const (
	cacheKeyCategoryTree = "category:tree"
	cacheKeyCategoryFlat = "category:flat"
)

// CatalogUsecase serves the catalog read path (tree, resolution, browse)
// and gates the product write path behind leaf-category validation.
type CatalogUsecase struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	cache      cache.CacheService
	cfg        *config.Config
}

func NewCatalogUsecase(categories domain.CategoryRepository, products domain.ProductRepository, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		categories: categories,
		products:   products,
		cache:      cache,
		cfg:        cfg,
	}
}

// GetCategoryTree returns the nested category forest, read-through cached.
// Every rebuild allocates a fresh tree and swaps it into the cache whole,
// so readers never observe a partially built tree.
func (u *CatalogUsecase) GetCategoryTree(ctx context.Context) ([]domain.CategoryNode, error) {
	if val, found := u.cache.Get(cacheKeyCategoryTree); found {
		return val.([]domain.CategoryNode), nil
	}

	flat, err := u.listFlatCategories(ctx)
	if err != nil {
		return nil, err
	}

	tree := catalog.BuildTree(flat)
	u.cache.Set(cacheKeyCategoryTree, tree, u.cfg.CacheCategoryTTL)
	return tree, nil
}

func (u *CatalogUsecase) listFlatCategories(ctx context.Context) ([]domain.Category, error) {
	if val, found := u.cache.Get(cacheKeyCategoryFlat); found {
		return val.([]domain.Category), nil
	}

	flat, err := u.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(cacheKeyCategoryFlat, flat, u.cfg.CacheCategoryTTL)
	return flat, nil
}

// ResolveCategory resolves a caller-supplied token (id, slug, or legacy
// display name) to a node with its ancestor path. The boolean reports
// whether a canonical node was found; callers needing a label on failure
// use catalog.DisplayLabel and must mark the result as unresolved.
func (u *CatalogUsecase) ResolveCategory(ctx context.Context, token string) (domain.ResolvedPath, bool, error) {
	tree, err := u.GetCategoryTree(ctx)
	if err != nil {
		return domain.ResolvedPath{}, false, err
	}
	path, ok := catalog.Resolve(token, tree)
	return path, ok, nil
}

// ListProducts runs the catalog query engine over a fresh bulk read and
// prices every result row for the caller's audience.
func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter, audience domain.Audience) ([]domain.PricedProduct, domain.Pagination, error) {
	if filter.PageSize < 1 {
		filter.PageSize = u.cfg.DefaultPageSize
	}
	if filter.PageSize > u.cfg.MaxPageSize {
		filter.PageSize = u.cfg.MaxPageSize
	}

	tree, err := u.GetCategoryTree(ctx)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	products, err := u.products.ListProducts(ctx, "")
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	page := catalog.Query(products, tree, filter)

	priced := make([]domain.PricedProduct, len(page.Items))
	for i, p := range page.Items {
		priced[i] = pricedView(p, audience)
	}
	return priced, page.Pagination, nil
}

// GetProduct returns a single audience-priced product or a NotFoundError.
func (u *CatalogUsecase) GetProduct(ctx context.Context, id string, audience domain.Audience) (*domain.PricedProduct, error) {
	product, err := u.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	view := pricedView(*product, audience)
	return &view, nil
}

// GetProductRaw returns the stored product with both prices, for admin use.
func (u *CatalogUsecase) GetProductRaw(ctx context.Context, id string) (*domain.Product, error) {
	product, err := u.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "product", ID: id}
	}
	return product, nil
}

// CreateProduct validates and persists a new product. The category token is
// resolved through the resolver (callers pass ids, slugs, or names
// interchangeably) and canonicalized to the matched node's id; attachment
// to a non-leaf category is rejected. An id collision is retried once with
// a fresh key before failing.
func (u *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Name == "" {
		return domain.NewValidationError("product name is required")
	}
	if product.RetailPrice <= 0 {
		return domain.NewValidationError("retail price must be positive")
	}
	if product.DealerPrice != nil && *product.DealerPrice <= 0 {
		product.DealerPrice = nil
	}
	if product.Stock < 0 {
		return domain.NewValidationError("stock cannot be negative")
	}

	if err := u.validateLeafCategory(ctx, product); err != nil {
		return err
	}

	if product.ID == "" {
		product.ID = utils.GenerateUUID()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := u.products.CreateProduct(ctx, product); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			product.ID = utils.GenerateUUID()
			return u.products.CreateProduct(ctx, product)
		}
		return err
	}
	return nil
}

// UpdateProduct applies changes to an existing product, re-running the
// leaf-category check when the category reference changes.
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, product *domain.Product) error {
	existing, err := u.products.GetProductByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &domain.NotFoundError{Entity: "product", ID: product.ID}
	}

	if product.CategoryID != existing.CategoryID {
		if err := u.validateLeafCategory(ctx, product); err != nil {
			return err
		}
	}

	if product.RetailPrice <= 0 {
		return domain.NewValidationError("retail price must be positive")
	}
	if product.DealerPrice != nil && *product.DealerPrice <= 0 {
		product.DealerPrice = nil
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	return u.products.UpdateProduct(ctx, product)
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	return u.products.DeleteProduct(ctx, id)
}

// validateLeafCategory resolves the product's category token and enforces
// attachment to leaf categories only. Unlike browse reads, an unresolvable
// token on the write path is a hard validation failure.
func (u *CatalogUsecase) validateLeafCategory(ctx context.Context, product *domain.Product) error {
	if product.CategoryID == "" {
		return domain.NewValidationError("category is required")
	}

	tree, err := u.GetCategoryTree(ctx)
	if err != nil {
		return err
	}
	path, ok := catalog.Resolve(product.CategoryID, tree)
	if !ok {
		return domain.NewValidationError("category %q does not resolve", product.CategoryID)
	}
	product.CategoryID = path.Node.ID

	flat, err := u.listFlatCategories(ctx)
	if err != nil {
		return err
	}
	if !catalog.IsLeaf(product.CategoryID, flat) {
		return domain.NewValidationError("category %q has subcategories; products attach to leaf categories only", path.Node.Slug)
	}
	return nil
}

// --- Category administration ---

func (u *CatalogUsecase) GetCategoriesFlat(ctx context.Context) ([]domain.Category, error) {
	return u.listFlatCategories(ctx)
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return domain.NewValidationError("category name is required")
	}
	if category.Level < domain.LevelRoot || category.Level > domain.LevelSecondSubcategory {
		return domain.NewValidationError("category level must be 0, 1, or 2")
	}
	if category.Level == domain.LevelRoot && category.ParentID != nil {
		return domain.NewValidationError("root categories cannot have a parent")
	}
	if category.Level > domain.LevelRoot {
		if category.ParentID == nil {
			return domain.NewValidationError("level %d categories require a parent", category.Level)
		}
		parent, err := u.categories.GetCategoryByID(ctx, *category.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.NewValidationError("parent category %q does not exist", *category.ParentID)
		}
		if parent.Level != category.Level-1 {
			return domain.NewValidationError("parent of a level %d category must be level %d", category.Level, category.Level-1)
		}
	}

	if category.Slug == "" {
		category.Slug = utils.GenerateSlug(category.Name)
	}
	if category.ID == "" {
		category.ID = utils.GenerateUUID()
	}

	if err := u.categories.CreateCategory(ctx, category); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			category.ID = utils.GenerateUUID()
			if err := u.categories.CreateCategory(ctx, category); err != nil {
				return err
			}
		} else {
			return err
		}
	}

	u.invalidateCategoryCache()
	return nil
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id string) error {
	if err := u.categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	u.invalidateCategoryCache()
	return nil
}

func (u *CatalogUsecase) invalidateCategoryCache() {
	u.cache.Delete(cacheKeyCategoryTree)
	u.cache.Delete(cacheKeyCategoryFlat)
}

// pricedView applies the audience price rule to one product row and rounds
// at this display boundary.
func pricedView(p domain.Product, audience domain.Audience) domain.PricedProduct {
	resolved := catalog.ResolvePrice(p, audience)
	view := domain.PricedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       catalog.RoundMoney(resolved.Displayed),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if resolved.Reference != nil {
		ref := catalog.RoundMoney(*resolved.Reference)
		view.CompareAtPrice = &ref
	}
	return view
}
