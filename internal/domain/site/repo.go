package site

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, s *Site) error
	GetByID(ctx context.Context, id int64, scope auth.Scope) (*Site, error)
	List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Site, int, error)
	ListWithBuildings(ctx context.Context, scope auth.Scope) ([]*SiteWithBuildings, error)
	Update(ctx context.Context, id int64, patch Patch) (*Site, error)
	Delete(ctx context.Context, id int64) error
}
