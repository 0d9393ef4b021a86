package domain

import "context"

// Pagination describes one page of a filtered result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TransactionManager runs fn inside a database transaction carried on the
// context; repositories pick it up transparently.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
