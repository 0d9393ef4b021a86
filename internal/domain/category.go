package domain

import "context"

// The category hierarchy is fixed at three levels: root departments,
// subcategories, and second-subcategories. Products attach to leaves only.
const (
	LevelRoot              = 0
	LevelSubcategory       = 1
	LevelSecondSubcategory = 2
)

// Category is the flat persisted record. A level-0 category has no parent;
// a level-1 parent is level-0; a level-2 parent is level-1. Slugs are unique
// within a level but not across levels.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Level    int     `json:"level"`
	ParentID *string `json:"parentId,omitempty"`
}

// CategoryNode is the tree-shaped projection of Category records, rebuilt
// on demand. It is a read-only view: built once per rebuild and swapped,
// never mutated in place. Nodes carry no parent back-references; ancestor
// chains are derived by re-walking from the roots.
type CategoryNode struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Slug                string         `json:"slug"`
	Level               int            `json:"level"`
	Subcategories       []CategoryNode `json:"subcategories"`
	SecondSubcategories []CategoryNode `json:"secondSubcategories"`
}

// ResolvedPath is a resolved category node with its strict ancestor chain
// ordered root-first. Breadcrumbs render Ancestors followed by Node.
type ResolvedPath struct {
	Node      CategoryNode   `json:"node"`
	Ancestors []CategoryNode `json:"ancestors"`
}

type CategoryRepository interface {
	// ListCategories returns all category records ordered by (level, name).
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) error
}
