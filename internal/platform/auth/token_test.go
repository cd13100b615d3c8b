package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.Issue(42, "nurse@example.com", "Ann Field", RoleNurse, 3, []int64{5, 7})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != 42 {
		t.Errorf("expected user id 42, got %d", id)
	}
	if claims.Email != "nurse@example.com" {
		t.Errorf("expected email to round-trip, got %q", claims.Email)
	}
	if claims.Role != RoleNurse {
		t.Errorf("expected role %q, got %q", RoleNurse, claims.Role)
	}
	if claims.PrimarySiteID != 3 {
		t.Errorf("expected primary site 3, got %d", claims.PrimarySiteID)
	}
	if len(claims.AssignedSiteIDs) != 2 || claims.AssignedSiteIDs[0] != 5 || claims.AssignedSiteIDs[1] != 7 {
		t.Errorf("expected assigned sites [5 7], got %v", claims.AssignedSiteIDs)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer("a-completely-different-secret", time.Hour)

	token, err := issuer.Issue(1, "a@b.c", "A B", RoleAdmin, 0, nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue(1, "a@b.c", "A B", RoleNurse, 1, nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatal("expected parse to fail on expired token")
	}
}

func TestParse_Tampered(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.Issue(1, "a@b.c", "A B", RoleNurse, 1, nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + ".eyJyb2xlIjoiYWRtaW4ifQ." + parts[2]
	if _, err := issuer.Parse(tampered); err == nil {
		t.Fatal("expected parse to fail on tampered payload")
	}
}

func TestClaims_UserID_BadSubject(t *testing.T) {
	c := &Claims{}
	c.Subject = "not-a-number"
	if _, err := c.UserID(); err == nil {
		t.Fatal("expected error for non-numeric subject")
	}
}
