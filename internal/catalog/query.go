package catalog

import (
	"sort"
	"strings"

	"prosalon-backend/internal/domain"
)

const defaultPageSize = 20

// Query filters and paginates the product catalog against the category
// tree. Category tokens are resolved through the resolver; an unresolvable
// token yields an empty page with total 0 rather than an error, so catalog
// browsing degrades gracefully. Results are sorted newest-first with an id
// tiebreak, keeping page boundaries stable across repeated requests.
func Query(products []domain.Product, tree []domain.CategoryNode, filter domain.ProductFilter) domain.ProductPage {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	categoryID, ok := resolveScope(filter, tree)
	if !ok {
		return emptyPage(filter)
	}

	matched := make([]domain.Product, 0, len(products))
	search := strings.ToLower(filter.Search)
	for _, p := range products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		// Range bounds apply to the retail price: the catalog-level
		// filter is audience-agnostic.
		if filter.MinPrice != nil && p.RetailPrice < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.RetailPrice > *filter.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return domain.ProductPage{
		Items: matched[start:end],
		Pagination: domain.Pagination{
			Page:       filter.Page,
			Limit:      filter.PageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}
}

// resolveScope turns the filter's category tokens into the single category
// id products must match. Tokens are resolved shallowest-first, each deeper
// token within the subtree of the previous match; the deepest resolved id
// wins and unspecified deeper levels impose no constraint. The second
// return is false when any supplied token fails to resolve.
func resolveScope(filter domain.ProductFilter, tree []domain.CategoryNode) (string, bool) {
	tokens := []string{
		filter.CategoryToken,
		filter.SubcategoryToken,
		filter.SecondSubcategoryToken,
	}

	var (
		scoped bool
		node   domain.CategoryNode
	)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		var (
			path domain.ResolvedPath
			ok   bool
		)
		if scoped {
			path, ok = ResolveIn(token, node)
		} else {
			path, ok = Resolve(token, tree)
		}
		if !ok {
			return "", false
		}
		node = path.Node
		scoped = true
	}

	if !scoped {
		return "", true
	}
	return node.ID, true
}

func emptyPage(filter domain.ProductFilter) domain.ProductPage {
	return domain.ProductPage{
		Items: []domain.Product{},
		Pagination: domain.Pagination{
			Page:       filter.Page,
			Limit:      filter.PageSize,
			TotalItems: 0,
			TotalPages: 0,
		},
	}
}
