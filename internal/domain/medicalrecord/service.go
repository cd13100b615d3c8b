package medicalrecord

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type Service struct {
	records Repository
}

func NewService(records Repository) *Service {
	return &Service{records: records}
}

func (s *Service) Create(ctx context.Context, rec *MedicalRecord, scope auth.Scope) error {
	if rec.PatientID == 0 {
		return db.Invalidf("patient_id is required")
	}
	if err := s.records.PatientInScope(ctx, rec.PatientID, scope); err != nil {
		return err
	}
	return s.records.Create(ctx, rec)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, scope auth.Scope) ([]*MedicalRecord, error) {
	return s.records.ListByPatient(ctx, patientID, scope)
}

func (s *Service) LatestByPatient(ctx context.Context, patientID int64, scope auth.Scope) (*MedicalRecord, error) {
	return s.records.LatestByPatient(ctx, patientID, scope)
}
