package building

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type Service struct {
	buildings Repository
}

func NewService(buildings Repository) *Service {
	return &Service{buildings: buildings}
}

func (s *Service) Create(ctx context.Context, b *Building) error {
	if b.Name == "" {
		return db.Invalidf("name is required")
	}
	if b.SiteID == 0 {
		return db.Invalidf("site_id is required")
	}
	return s.buildings.Create(ctx, b)
}

func (s *Service) Get(ctx context.Context, id int64, scope auth.Scope) (*Building, error) {
	return s.buildings.GetByID(ctx, id, scope)
}

func (s *Service) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Building, int, error) {
	return s.buildings.List(ctx, filter, scope, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Building, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, db.Invalidf("name cannot be empty")
	}
	return s.buildings.Update(ctx, id, patch, scope)
}

func (s *Service) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	return s.buildings.Delete(ctx, id, scope)
}
