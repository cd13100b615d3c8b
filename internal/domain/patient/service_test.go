package patient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type mockRepo struct {
	patients map[int64]*Patient
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: map[int64]*Patient{}, nextID: 1}
}

func (m *mockRepo) add(p Patient) *Patient {
	p.ID = m.nextID
	m.nextID++
	m.patients[p.ID] = &p
	return m.patients[p.ID]
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) (*Patient, error) {
	return m.add(*p), nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64, scope auth.Scope) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok || !scope.Contains(p.SiteID) {
		return nil, db.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Patient, int, error) {
	items := []*Patient{}
	for _, p := range m.patients {
		if !scope.Contains(p.SiteID) {
			continue
		}
		if filter.SiteID != 0 && p.SiteID != filter.SiteID {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(filter.Search)) {
			continue
		}
		items = append(items, p)
	}
	return items, len(items), nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Patient, error) {
	p, err := m.GetByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	if patch.FirstName == nil && patch.LastName == nil && patch.Birthdate == nil &&
		patch.Gender == nil && patch.PhoneNumber == nil && patch.ContactName == nil &&
		patch.ContactPhoneNumber == nil && patch.Insurance == nil &&
		patch.IsActive == nil && patch.SiteID == nil && patch.BuildingID == nil {
		return nil, db.ErrNoFields
	}
	if patch.SiteID != nil {
		p.SiteID = *patch.SiteID
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	return p, nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	if _, err := m.GetByID(ctx, id, scope); err != nil {
		return err
	}
	delete(m.patients, id)
	return nil
}

func validPatient(siteID int64) *Patient {
	return &Patient{
		FirstName: "Rose",
		LastName:  "Hart",
		Birthdate: NewDate(1941, time.June, 2),
		Gender:    "F",
		SiteID:    siteID,
		IsActive:  true,
	}
}

func TestCreate_SiteMustBeInScope(t *testing.T) {
	svc := NewService(newMockRepo())

	// out-of-scope site reads as not found, not forbidden
	_, err := svc.Create(context.Background(), validPatient(2), auth.SiteSet(1))
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found for out-of-scope site, got %v", err)
	}

	if _, err := svc.Create(context.Background(), validPatient(1), auth.SiteSet(1)); err != nil {
		t.Fatalf("expected in-scope create to succeed, got %v", err)
	}
	if _, err := svc.Create(context.Background(), validPatient(2), auth.AllSites()); err != nil {
		t.Fatalf("expected admin create to succeed anywhere, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"missing first name", func(p *Patient) { p.FirstName = "" }},
		{"missing last name", func(p *Patient) { p.LastName = "" }},
		{"missing birthdate", func(p *Patient) { p.Birthdate = Date{} }},
		{"bad gender", func(p *Patient) { p.Gender = "X" }},
		{"missing site", func(p *Patient) { p.SiteID = 0 }},
	}

	svc := NewService(newMockRepo())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient(1)
			tt.mutate(p)
			if _, err := svc.Create(context.Background(), p, auth.AllSites()); !errors.Is(err, db.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdate_MoveRequiresDestinationInScope(t *testing.T) {
	repo := newMockRepo()
	p := repo.add(*validPatient(1))
	svc := NewService(repo)

	dest := int64(5)
	_, err := svc.Update(context.Background(), p.ID, Patch{SiteID: &dest}, auth.SiteSet(1))
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found for out-of-scope destination, got %v", err)
	}

	if _, err := svc.Update(context.Background(), p.ID, Patch{SiteID: &dest}, auth.SiteSet(1, 5)); err != nil {
		t.Fatalf("expected move within scope to succeed, got %v", err)
	}
}

func TestList_ScopeAndSearch(t *testing.T) {
	repo := newMockRepo()
	repo.add(Patient{FirstName: "Rose", LastName: "Hart", SiteID: 1})
	repo.add(Patient{FirstName: "Miguel", LastName: "Ortiz", SiteID: 1})
	repo.add(Patient{FirstName: "Rose", LastName: "Chen", SiteID: 2})
	svc := NewService(repo)

	items, total, err := svc.List(context.Background(), ListFilter{Search: "rose"}, auth.SiteSet(1), 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].LastName != "Hart" {
		t.Errorf("expected only the in-scope Rose, got %d items", len(items))
	}

	_, total, err = svc.List(context.Background(), ListFilter{Search: "rose"}, auth.AllSites(), 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Errorf("expected both Roses for admin, got %d", total)
	}
}

func TestDelete_OutOfScope(t *testing.T) {
	repo := newMockRepo()
	p := repo.add(*validPatient(2))
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), p.ID, auth.SiteSet(1)); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.patients) != 1 {
		t.Error("expected patient to survive an out-of-scope delete")
	}
}
