package history

import "context"

// Repository port (interface untuk persistence history).
// Save must be safe under concurrent analyses; implementations serialize
// writes themselves (single-writer connection or transactions).
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id int64) (*Record, error)
	Latest(ctx context.Context, limit int) ([]*Record, error)
	Summary(ctx context.Context, sinceDays int) (Summary, error)
	Paginate(ctx context.Context, page, pageSize int) (PaginatedResult, error)
}
