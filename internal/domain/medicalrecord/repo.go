package medicalrecord

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, rec *MedicalRecord) error
	ListByPatient(ctx context.Context, patientID int64, scope auth.Scope) ([]*MedicalRecord, error)
	LatestByPatient(ctx context.Context, patientID int64, scope auth.Scope) (*MedicalRecord, error)
	// PatientInScope reports whether the patient exists within the scope.
	PatientInScope(ctx context.Context, patientID int64, scope auth.Scope) error
}
