package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type mockRepo struct {
	activities   map[int64]*Activity
	patientSites map[int64]int64 // patient id -> site id
	nextID       int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		activities:   map[int64]*Activity{},
		patientSites: map[int64]int64{},
		nextID:       1,
	}
}

func (m *mockRepo) siteOf(a *Activity) int64 {
	return m.patientSites[a.PatientID]
}

func (m *mockRepo) Create(ctx context.Context, a *Activity) (*Activity, error) {
	a.ID = m.nextID
	m.nextID++
	m.activities[a.ID] = a
	return a, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64, scope auth.Scope) (*Activity, error) {
	a, ok := m.activities[id]
	if !ok || !scope.Contains(m.siteOf(a)) {
		return nil, db.ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Activity, int, error) {
	items := []*Activity{}
	for _, a := range m.activities {
		if !scope.Contains(m.siteOf(a)) {
			continue
		}
		if filter.PatientID != 0 && a.PatientID != filter.PatientID {
			continue
		}
		if len(filter.PatientIDs) > 0 {
			match := false
			for _, id := range filter.PatientIDs {
				if a.PatientID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.PharmFlag == "true" && !a.PharmFlag {
			continue
		}
		if filter.PharmFlag == "false" && a.PharmFlag {
			continue
		}
		items = append(items, a)
	}
	return items, len(items), nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Activity, error) {
	a, err := m.GetByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	if patch.PatientID == nil && patch.UserID == nil && patch.ActivityType == nil &&
		patch.PharmFlag == nil && patch.Notes == nil && patch.ServiceStart == nil &&
		patch.ServiceEnd == nil && patch.DurationMinutes == nil {
		return nil, db.ErrNoFields
	}
	if patch.DurationMinutes != nil {
		a.DurationMinutes = *patch.DurationMinutes
	}
	if patch.PatientID != nil {
		a.PatientID = *patch.PatientID
	}
	return a, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	if _, err := m.GetByID(ctx, id, scope); err != nil {
		return err
	}
	delete(m.activities, id)
	return nil
}

func (m *mockRepo) PatientSiteID(ctx context.Context, patientID int64, scope auth.Scope) (int64, error) {
	siteID, ok := m.patientSites[patientID]
	if !ok || !scope.Contains(siteID) {
		return 0, db.ErrNotFound
	}
	return siteID, nil
}

func validActivity(patientID int64) *Activity {
	start := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)
	return &Activity{
		PatientID:       patientID,
		UserID:          7,
		ActivityType:    "medication review",
		ServiceStart:    start,
		ServiceEnd:      start.Add(90 * time.Second),
		DurationMinutes: 1.5,
	}
}

func TestCreate_ScopedThroughPatient(t *testing.T) {
	repo := newMockRepo()
	repo.patientSites[10] = 1
	repo.patientSites[11] = 2
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), validActivity(10), auth.SiteSet(1)); err != nil {
		t.Fatalf("expected in-scope create to succeed, got %v", err)
	}

	// the owning patient is out of scope: indistinguishable from missing
	_, err := svc.Create(context.Background(), validActivity(11), auth.SiteSet(1))
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// unknown patient
	_, err = svc.Create(context.Background(), validActivity(99), auth.AllSites())
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found for unknown patient, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	repo := newMockRepo()
	repo.patientSites[10] = 1
	svc := NewService(repo)

	tests := []struct {
		name   string
		mutate func(*Activity)
	}{
		{"missing patient", func(a *Activity) { a.PatientID = 0 }},
		{"missing user", func(a *Activity) { a.UserID = 0 }},
		{"missing type", func(a *Activity) { a.ActivityType = "" }},
		{"missing window", func(a *Activity) { a.ServiceStart = time.Time{} }},
		{"end before start", func(a *Activity) { a.ServiceEnd = a.ServiceStart.Add(-time.Minute) }},
		{"zero duration", func(a *Activity) { a.DurationMinutes = 0 }},
		{"negative duration", func(a *Activity) { a.DurationMinutes = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validActivity(10)
			tt.mutate(a)
			if _, err := svc.Create(context.Background(), a, auth.AllSites()); !errors.Is(err, db.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreate_FractionalMinutes(t *testing.T) {
	repo := newMockRepo()
	repo.patientSites[10] = 1
	svc := NewService(repo)

	a := validActivity(10)
	a.DurationMinutes = 1.5
	created, err := svc.Create(context.Background(), a, auth.SiteSet(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.DurationMinutes != 1.5 {
		t.Errorf("expected 1.5 minutes preserved, got %v", created.DurationMinutes)
	}
}

func TestUpdate_ReassignRequiresNewPatientInScope(t *testing.T) {
	repo := newMockRepo()
	repo.patientSites[10] = 1
	repo.patientSites[11] = 2
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validActivity(10), auth.SiteSet(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := int64(11)
	_, err = svc.Update(context.Background(), created.ID, Patch{PatientID: &other}, auth.SiteSet(1))
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found for out-of-scope target patient, got %v", err)
	}

	if _, err := svc.Update(context.Background(), created.ID, Patch{PatientID: &other}, auth.SiteSet(1, 2)); err != nil {
		t.Fatalf("expected reassign within scope to succeed, got %v", err)
	}
}

func TestListByPatients(t *testing.T) {
	repo := newMockRepo()
	repo.patientSites[10] = 1
	repo.patientSites[11] = 1
	repo.patientSites[12] = 2
	svc := NewService(repo)

	for _, pid := range []int64{10, 11, 12} {
		if _, err := svc.Create(context.Background(), validActivity(pid), auth.AllSites()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// an empty id set is a request error, not an empty result
	_, _, err := svc.ListByPatients(context.Background(), nil, auth.AllSites(), 50, 0)
	if !errors.Is(err, db.ErrInvalid) {
		t.Fatalf("expected validation error for empty id set, got %v", err)
	}

	items, total, err := svc.ListByPatients(context.Background(), []int64{10, 12}, auth.AllSites(), 50, 0)
	if err != nil {
		t.Fatalf("list by patients: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 activities across the id set, got %d", total)
	}
	for _, a := range items {
		if a.PatientID == 11 {
			t.Error("patient 11 was not requested")
		}
	}

	// out-of-scope patients silently contribute nothing
	_, total, err = svc.ListByPatients(context.Background(), []int64{10, 12}, auth.SiteSet(1), 50, 0)
	if err != nil {
		t.Fatalf("list by patients: %v", err)
	}
	if total != 1 {
		t.Errorf("expected only the in-scope patient's activity, got %d", total)
	}
}

func TestList_PharmFlagFilter(t *testing.T) {
	repo := newMockRepo()
	repo.patientSites[10] = 1
	svc := NewService(repo)

	a := validActivity(10)
	a.PharmFlag = true
	if _, err := svc.Create(context.Background(), a, auth.AllSites()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), validActivity(10), auth.AllSites()); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, total, err := svc.List(context.Background(), ListFilter{PharmFlag: "true"}, auth.AllSites(), 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 flagged activity, got %d", total)
	}

	_, total, err = svc.List(context.Background(), ListFilter{PharmFlag: "all"}, auth.AllSites(), 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Errorf("expected all activities with sentinel filter, got %d", total)
	}
}
