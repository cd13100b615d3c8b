package activity

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, a *Activity) (*Activity, error)
	GetByID(ctx context.Context, id int64, scope auth.Scope) (*Activity, error)
	List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Activity, int, error)
	Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Activity, error)
	Delete(ctx context.Context, id int64, scope auth.Scope) error
	// PatientSiteID resolves the owning site of a patient, scoped, so the
	// service can authorize creates and moves before writing.
	PatientSiteID(ctx context.Context, patientID int64, scope auth.Scope) (int64, error)
}
