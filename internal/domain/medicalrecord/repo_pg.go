package medicalrecord

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recordCols = `id, patient_id, medical_records, bp_at_goal,
	hospital_visit_since_last_review, a1c_at_goal, benzodiazepines,
	antipsychotics, opioids, fall_since_last_visit, created_at`

func scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.MedicalRecords, &rec.BPAtGoal,
		&rec.HospitalVisitSinceLastReview, &rec.A1CAtGoal, &rec.Benzodiazepines,
		&rec.Antipsychotics, &rec.Opioids, &rec.FallSinceLastVisit, &rec.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO medical_records (patient_id, medical_records, bp_at_goal,
			hospital_visit_since_last_review, a1c_at_goal, benzodiazepines,
			antipsychotics, opioids, fall_since_last_visit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		rec.PatientID, rec.MedicalRecords, rec.BPAtGoal,
		rec.HospitalVisitSinceLastReview, rec.A1CAtGoal, rec.Benzodiazepines,
		rec.Antipsychotics, rec.Opioids, rec.FallSinceLastVisit).
		Scan(&rec.ID, &rec.CreatedAt)
	return db.TranslateError(err)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, scope auth.Scope) ([]*MedicalRecord, error) {
	if err := r.PatientInScope(ctx, patientID, scope); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM medical_records
		WHERE patient_id = $1
		ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*MedicalRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (r *repoPG) LatestByPatient(ctx context.Context, patientID int64, scope auth.Scope) (*MedicalRecord, error) {
	if err := r.PatientInScope(ctx, patientID, scope); err != nil {
		return nil, err
	}
	return scanRecord(r.pool.QueryRow(ctx, `
		SELECT `+recordCols+` FROM medical_records
		WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, patientID))
}

func (r *repoPG) PatientInScope(ctx context.Context, patientID int64, scope auth.Scope) error {
	query := `SELECT 1 FROM patients WHERE id = $1`
	args := []interface{}{patientID}
	if !scope.All {
		query += ` AND site_id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		return db.TranslateError(err)
	}
	return nil
}
