package patient

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) (*Patient, error)
	GetByID(ctx context.Context, id int64, scope auth.Scope) (*Patient, error)
	List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Patient, int, error)
	Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Patient, error)
	Delete(ctx context.Context, id int64, scope auth.Scope) error
}
