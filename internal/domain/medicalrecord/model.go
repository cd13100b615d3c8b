package medicalrecord

import "time"

// MedicalRecord is a point-in-time snapshot of clinical review flags for
// a patient. Records are append-only; "latest" means newest created_at.
type MedicalRecord struct {
	ID                           int64     `json:"id"`
	PatientID                    int64     `json:"patient_id"`
	MedicalRecords               bool      `json:"medical_records"`
	BPAtGoal                     bool      `json:"bp_at_goal"`
	HospitalVisitSinceLastReview bool      `json:"hospital_visit_since_last_review"`
	A1CAtGoal                    bool      `json:"a1c_at_goal"`
	Benzodiazepines              bool      `json:"benzodiazepines"`
	Antipsychotics               bool      `json:"antipsychotics"`
	Opioids                      bool      `json:"opioids"`
	FallSinceLastVisit           bool      `json:"fall_since_last_visit"`
	CreatedAt                    time.Time `json:"created_at"`
}
