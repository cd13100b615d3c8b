package activity

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type Service struct {
	activities Repository
}

func NewService(activities Repository) *Service {
	return &Service{activities: activities}
}

// Create authorizes through the owning patient: a patient outside the
// caller's scope reads as not-found, never as forbidden.
func (s *Service) Create(ctx context.Context, a *Activity, scope auth.Scope) (*Activity, error) {
	if a.PatientID == 0 {
		return nil, db.Invalidf("patient_id is required")
	}
	if a.UserID == 0 {
		return nil, db.Invalidf("user_id is required")
	}
	if a.ActivityType == "" {
		return nil, db.Invalidf("activity_type is required")
	}
	if a.ServiceStart.IsZero() || a.ServiceEnd.IsZero() {
		return nil, db.Invalidf("service_start and service_end are required")
	}
	if a.ServiceEnd.Before(a.ServiceStart) {
		return nil, db.Invalidf("service_end cannot precede service_start")
	}
	if a.DurationMinutes <= 0 {
		return nil, db.Invalidf("duration_minutes must be positive")
	}
	if _, err := s.activities.PatientSiteID(ctx, a.PatientID, scope); err != nil {
		return nil, err
	}
	return s.activities.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64, scope auth.Scope) (*Activity, error) {
	return s.activities.GetByID(ctx, id, scope)
}

func (s *Service) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Activity, int, error) {
	return s.activities.List(ctx, filter, scope, limit, offset)
}

// ListByPatients returns activities for a set of patients in one call.
// Patients outside the caller's scope contribute nothing; they do not
// fail the request.
func (s *Service) ListByPatients(ctx context.Context, patientIDs []int64, scope auth.Scope, limit, offset int) ([]*Activity, int, error) {
	if len(patientIDs) == 0 {
		return nil, 0, db.Invalidf("patient_ids is required")
	}
	return s.activities.List(ctx, ListFilter{PatientIDs: patientIDs}, scope, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Activity, error) {
	if patch.ActivityType != nil && *patch.ActivityType == "" {
		return nil, db.Invalidf("activity_type cannot be empty")
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes <= 0 {
		return nil, db.Invalidf("duration_minutes must be positive")
	}
	if patch.ServiceStart != nil && patch.ServiceEnd != nil &&
		patch.ServiceEnd.Before(*patch.ServiceStart) {
		return nil, db.Invalidf("service_end cannot precede service_start")
	}
	// reassigning to another patient requires that patient in scope too
	if patch.PatientID != nil {
		if _, err := s.activities.PatientSiteID(ctx, *patch.PatientID, scope); err != nil {
			return nil, err
		}
	}
	return s.activities.Update(ctx, id, patch, scope)
}

func (s *Service) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	return s.activities.Delete(ctx, id, scope)
}
