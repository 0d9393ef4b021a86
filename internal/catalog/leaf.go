package catalog

import "prosalon-backend/internal/domain"

// IsLeaf reports whether no other category record points at id as its
// parent. Products attach to leaf categories only; aggregating nodes exist
// purely for navigation. A childless root is a valid leaf.
func IsLeaf(id string, flat []domain.Category) bool {
	for _, c := range flat {
		if c.ParentID != nil && *c.ParentID == id {
			return false
		}
	}
	return true
}
