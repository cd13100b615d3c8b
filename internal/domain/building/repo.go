package building

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, b *Building) error
	GetByID(ctx context.Context, id int64, scope auth.Scope) (*Building, error)
	List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Building, int, error)
	Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Building, error)
	Delete(ctx context.Context, id int64, scope auth.Scope) error
}
