package patient

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

var validGenders = map[string]bool{"M": true, "F": true, "O": true}

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Create rejects a site outside the caller's scope before touching the
// store, surfacing it as not-found rather than forbidden so that site
// existence is not leaked across scopes.
func (s *Service) Create(ctx context.Context, p *Patient, scope auth.Scope) (*Patient, error) {
	if p.FirstName == "" || p.LastName == "" {
		return nil, db.Invalidf("first_name and last_name are required")
	}
	if p.Birthdate.IsZero() {
		return nil, db.Invalidf("birthdate is required")
	}
	if !validGenders[p.Gender] {
		return nil, db.Invalidf("gender must be one of M, F, O")
	}
	if p.SiteID == 0 {
		return nil, db.Invalidf("site_id is required")
	}
	if !scope.Contains(p.SiteID) {
		return nil, db.ErrNotFound
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64, scope auth.Scope) (*Patient, error) {
	return s.patients.GetByID(ctx, id, scope)
}

func (s *Service) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, filter, scope, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Patient, error) {
	if patch.FirstName != nil && *patch.FirstName == "" {
		return nil, db.Invalidf("first_name cannot be empty")
	}
	if patch.LastName != nil && *patch.LastName == "" {
		return nil, db.Invalidf("last_name cannot be empty")
	}
	if patch.Gender != nil && !validGenders[*patch.Gender] {
		return nil, db.Invalidf("gender must be one of M, F, O")
	}
	// moving a patient requires the destination site to be in scope too
	if patch.SiteID != nil && !scope.Contains(*patch.SiteID) {
		return nil, db.ErrNotFound
	}
	return s.patients.Update(ctx, id, patch, scope)
}

func (s *Service) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	return s.patients.Delete(ctx, id, scope)
}
