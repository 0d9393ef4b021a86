package catalog

import (
	"strings"

	"prosalon-backend/internal/domain"
)

// Resolve locates the category a caller-supplied token refers to. Tokens
// arrive inconsistently across the surrounding system: database ids, slugs
// baked into static navigation data, or legacy display names. The resolver
// is the single place that absorbs that inconsistency.
//
// The walk is depth-first with roots in input order; the first node matching
// any rule wins. Per node the rules are checked in order: exact id, exact
// slug, case-insensitive slug, case-insensitive name (legacy display
// fallback, e.g. "EQUIPMENT" from an old menu label).
func Resolve(token string, tree []domain.CategoryNode) (domain.ResolvedPath, bool) {
	for i := range tree {
		if path, ok := resolveNode(token, &tree[i], nil); ok {
			return path, true
		}
	}
	return domain.ResolvedPath{}, false
}

// ResolveIn resolves a token against the subtree below node, excluding the
// node itself. Used to scope sub-token resolution to an already-resolved
// parent. The returned ancestors include node.
func ResolveIn(token string, node domain.CategoryNode) (domain.ResolvedPath, bool) {
	ancestors := []domain.CategoryNode{node}
	for i := range node.Subcategories {
		if path, ok := resolveNode(token, &node.Subcategories[i], ancestors); ok {
			return path, true
		}
	}
	for i := range node.SecondSubcategories {
		if path, ok := resolveNode(token, &node.SecondSubcategories[i], ancestors); ok {
			return path, true
		}
	}
	return domain.ResolvedPath{}, false
}

func resolveNode(token string, node *domain.CategoryNode, ancestors []domain.CategoryNode) (domain.ResolvedPath, bool) {
	if matches(token, node) {
		chain := make([]domain.CategoryNode, len(ancestors))
		copy(chain, ancestors)
		return domain.ResolvedPath{Node: *node, Ancestors: chain}, true
	}

	ancestors = append(ancestors, *node)
	for i := range node.Subcategories {
		if path, ok := resolveNode(token, &node.Subcategories[i], ancestors); ok {
			return path, true
		}
	}
	for i := range node.SecondSubcategories {
		if path, ok := resolveNode(token, &node.SecondSubcategories[i], ancestors); ok {
			return path, true
		}
	}
	return domain.ResolvedPath{}, false
}

func matches(token string, node *domain.CategoryNode) bool {
	if node.ID == token || node.Slug == token {
		return true
	}
	if strings.EqualFold(node.Slug, token) {
		return true
	}
	return strings.EqualFold(node.Name, token)
}

// DisplayLabel converts a hyphenated token into Title Case words for
// rendering when resolution truly fails ("clay-masks" -> "Clay Masks").
// This is a display-only fallback: it must never be used to satisfy a
// lookup, and callers must flag the result as unresolved.
func DisplayLabel(token string) string {
	words := strings.Split(token, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
