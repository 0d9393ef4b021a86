// Package catalog implements the category hierarchy and catalog resolution
// engine: building the nested category tree from flat records, resolving
// caller-supplied category tokens, gating products to leaf categories,
// resolving audience pricing, and filtering/paginating the product catalog.
package catalog

import "prosalon-backend/internal/domain"

// BuildTree converts flat category records into the three-level display
// forest. Two passes over the input, order-independent: pass 1 registers a
// node per record and collects the roots, pass 2 attaches level-1 children
// to their roots and level-2 children to their subcategories. Records with
// a missing or wrong-level parent are silently dropped (orphan categories
// are invisible, not errors). Input order is preserved, so output is stable
// given the store's (level, name) ordering.
func BuildTree(flat []domain.Category) []domain.CategoryNode {
	nodes := make(map[string]*domain.CategoryNode, len(flat))
	byID := make(map[string]domain.Category, len(flat))
	rootIDs := make([]string, 0)

	for _, c := range flat {
		nodes[c.ID] = &domain.CategoryNode{
			ID:    c.ID,
			Name:  c.Name,
			Slug:  c.Slug,
			Level: c.Level,
		}
		byID[c.ID] = c
		if c.Level == domain.LevelRoot {
			rootIDs = append(rootIDs, c.ID)
		}
	}

	for _, c := range flat {
		if c.Level != domain.LevelSubcategory || c.ParentID == nil {
			continue
		}
		root, ok := nodes[*c.ParentID]
		if !ok || root.Level != domain.LevelRoot {
			continue
		}
		root.Subcategories = append(root.Subcategories, *nodes[c.ID])
	}

	for _, c := range flat {
		if c.Level != domain.LevelSecondSubcategory || c.ParentID == nil {
			continue
		}
		// The attached subcategory copies carry no back-reference, so the
		// grandparent is re-derived from the level-1 record itself.
		sub, ok := byID[*c.ParentID]
		if !ok || sub.Level != domain.LevelSubcategory || sub.ParentID == nil {
			continue
		}
		root, ok := nodes[*sub.ParentID]
		if !ok {
			continue
		}
		for i := range root.Subcategories {
			if root.Subcategories[i].ID == sub.ID {
				root.Subcategories[i].SecondSubcategories = append(
					root.Subcategories[i].SecondSubcategories, *nodes[c.ID])
				break
			}
		}
	}

	tree := make([]domain.CategoryNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		tree = append(tree, *nodes[id])
	}
	return tree
}
