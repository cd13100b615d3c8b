package site

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type Service struct {
	sites Repository
}

func NewService(sites Repository) *Service {
	return &Service{sites: sites}
}

func (s *Service) Create(ctx context.Context, site *Site) error {
	if site.Name == "" {
		return db.Invalidf("name is required")
	}
	return s.sites.Create(ctx, site)
}

func (s *Service) Get(ctx context.Context, id int64, scope auth.Scope) (*Site, error) {
	return s.sites.GetByID(ctx, id, scope)
}

func (s *Service) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Site, int, error) {
	return s.sites.List(ctx, filter, scope, limit, offset)
}

// ListWithBuildings returns the in-scope site hierarchy, each site carrying
// its buildings.
func (s *Service) ListWithBuildings(ctx context.Context, scope auth.Scope) ([]*SiteWithBuildings, error) {
	return s.sites.ListWithBuildings(ctx, scope)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Site, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, db.Invalidf("name cannot be empty")
	}
	return s.sites.Update(ctx, id, patch)
}

// Delete removes a site. Buildings cascade; a site still referenced as a
// user's primary site is a conflict and nothing is deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.sites.Delete(ctx, id)
}
