package catalog

import (
	"fmt"
	"testing"
	"time"

	"prosalon-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, categoryID string, retail float64, createdAt time.Time) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		CategoryID:  categoryID,
		RetailPrice: retail,
		CreatedAt:   createdAt,
	}
}

func TestQueryPagination(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	products := make([]domain.Product, 0, 23)
	for i := 0; i < 23; i++ {
		products = append(products, product(
			fmt.Sprintf("p-%02d", i),
			fmt.Sprintf("Clipper %d", i),
			"cat-clay",
			20,
			base.Add(time.Duration(i)*time.Hour),
		))
	}
	tree := testTree()

	page1 := Query(products, tree, domain.ProductFilter{Page: 1, PageSize: 10})
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, int64(23), page1.Pagination.TotalItems)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	// Newest first: the last-created product leads page one.
	assert.Equal(t, "p-22", page1.Items[0].ID)

	page2 := Query(products, tree, domain.ProductFilter{Page: 2, PageSize: 10})
	assert.Len(t, page2.Items, 10)

	page3 := Query(products, tree, domain.ProductFilter{Page: 3, PageSize: 10})
	assert.Len(t, page3.Items, 3)
	assert.Equal(t, "p-00", page3.Items[2].ID)

	// Pages tile the result set without overlap.
	seen := map[string]bool{}
	for _, page := range []domain.ProductPage{page1, page2, page3} {
		for _, p := range page.Items {
			assert.False(t, seen[p.ID], "product %s appears twice", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 23)
}

func TestQueryPagesCompose(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	products := make([]domain.Product, 0, 23)
	for i := 0; i < 23; i++ {
		products = append(products, product(
			fmt.Sprintf("p-%02d", i), fmt.Sprintf("Item %d", i), "cat-clay", 20,
			base.Add(time.Duration(i)*time.Hour)))
	}
	tree := testTree()

	// Two pages of n concatenated equal the first 2n of one double page.
	small1 := Query(products, tree, domain.ProductFilter{Page: 1, PageSize: 8})
	small2 := Query(products, tree, domain.ProductFilter{Page: 2, PageSize: 8})
	big := Query(products, tree, domain.ProductFilter{Page: 1, PageSize: 16})

	combined := append(append([]domain.Product{}, small1.Items...), small2.Items...)
	require.Len(t, combined, 16)
	for i := range combined {
		assert.Equal(t, big.Items[i].ID, combined[i].ID)
	}
}

func TestQueryPageBeyondEnd(t *testing.T) {
	base := time.Now()
	products := []domain.Product{product("p-1", "Shears", "cat-clay", 30, base)}

	page := Query(products, testTree(), domain.ProductFilter{Page: 5, PageSize: 10})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Pagination.TotalItems)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.Equal(t, 5, page.Pagination.Page)
}

func TestQueryDefaults(t *testing.T) {
	page := Query(nil, testTree(), domain.ProductFilter{})
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, defaultPageSize, page.Pagination.Limit)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
}

func TestQueryUnresolvableToken(t *testing.T) {
	base := time.Now()
	products := []domain.Product{product("p-1", "Shears", "cat-clay", 30, base)}

	page := Query(products, testTree(), domain.ProductFilter{
		CategoryToken: "no-such-category",
		Page:          1,
		PageSize:      10,
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestQuerySubTokenOutsideParent(t *testing.T) {
	base := time.Now()
	products := []domain.Product{product("p-1", "Mask", "cat-clay", 30, base)}

	// "chairs" lives under Equipment, not Skincare; the scoped resolution
	// fails and the page is empty rather than erroring.
	page := Query(products, testTree(), domain.ProductFilter{
		CategoryToken:    "skincare",
		SubcategoryToken: "chairs",
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
}

func TestQueryDeepestTokenWins(t *testing.T) {
	base := time.Now()
	products := []domain.Product{
		product("p-clay", "Kaolin Clay Mask", "cat-clay", 18, base),
		product("p-sheet", "Hydrating Sheet Mask", "cat-sheet", 6, base),
		product("p-cleanser", "Foam Cleanser", "cat-cleansers", 12, base),
	}

	page := Query(products, testTree(), domain.ProductFilter{
		CategoryToken:          "skincare",
		SubcategoryToken:       "masks",
		SecondSubcategoryToken: "clay-masks",
	})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-clay", page.Items[0].ID)
}

func TestQueryTokenEquivalence(t *testing.T) {
	base := time.Now()
	products := []domain.Product{
		product("p-clay", "Kaolin Clay Mask", "cat-clay", 18, base),
		product("p-sheet", "Hydrating Sheet Mask", "cat-sheet", 6, base),
	}
	tree := testTree()

	for _, token := range []string{"cat-clay", "clay-masks", "CLAY-Masks", "Clay Masks"} {
		page := Query(products, tree, domain.ProductFilter{SecondSubcategoryToken: token})
		require.Len(t, page.Items, 1, "token %q", token)
		assert.Equal(t, "p-clay", page.Items[0].ID)
	}
}

func TestQuerySearchAndPriceRange(t *testing.T) {
	base := time.Now()
	products := []domain.Product{
		product("p-1", "Clay Mask", "cat-clay", 18, base),
		product("p-2", "Charcoal Clay Mask", "cat-clay", 32, base.Add(time.Minute)),
		product("p-3", "Sheet Mask", "cat-sheet", 6, base),
	}
	tree := testTree()

	page := Query(products, tree, domain.ProductFilter{Search: "CLAY"})
	assert.Len(t, page.Items, 2, "search is case-insensitive")

	page = Query(products, tree, domain.ProductFilter{
		Search:   "clay",
		MinPrice: floatPtr(20),
	})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-2", page.Items[0].ID)

	page = Query(products, tree, domain.ProductFilter{
		MaxPrice: floatPtr(10),
	})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-3", page.Items[0].ID)

	// Bounds are inclusive.
	page = Query(products, tree, domain.ProductFilter{
		MinPrice: floatPtr(18),
		MaxPrice: floatPtr(18),
	})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-1", page.Items[0].ID)
}

func TestQuerySearchMatchesDescription(t *testing.T) {
	base := time.Now()
	products := []domain.Product{
		{ID: "p-1", Name: "Detox Mask", Description: "with bentonite clay", CategoryID: "cat-clay", RetailPrice: 18, CreatedAt: base},
	}

	page := Query(products, testTree(), domain.ProductFilter{Search: "bentonite"})
	assert.Len(t, page.Items, 1)
}

func TestQueryStableOrder(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		product("p-b", "B", "cat-clay", 10, ts),
		product("p-a", "A", "cat-clay", 10, ts),
		product("p-c", "C", "cat-clay", 10, ts.Add(time.Hour)),
	}

	page := Query(products, testTree(), domain.ProductFilter{})
	require.Len(t, page.Items, 3)
	assert.Equal(t, "p-c", page.Items[0].ID, "newest first")
	assert.Equal(t, "p-a", page.Items[1].ID, "id ascending breaks the tie")
	assert.Equal(t, "p-b", page.Items[2].ID)
}
