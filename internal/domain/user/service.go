package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

const bcryptCost = 10

// ErrBadPassword is returned by Authenticate when the account exists but
// the password does not match.
var ErrBadPassword = errors.New("incorrect password")

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	switch {
	case req.FirstName == "", req.LastName == "":
		return nil, db.Invalidf("first_name and last_name are required")
	case req.Email == "":
		return nil, db.Invalidf("email is required")
	case req.Password == "":
		return nil, db.Invalidf("password is required")
	case !auth.ValidRole(req.Role):
		return nil, db.Invalidf("invalid role: %s", req.Role)
	case req.PrimarySiteID == 0:
		return nil, db.Invalidf("primary_site_id is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	assigned := req.AssignedSiteIDs
	if assigned == nil {
		assigned = []int64{}
	}

	u := &User{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           strings.ToLower(req.Email),
		PasswordHash:    string(hash),
		Role:            req.Role,
		PrimarySiteID:   req.PrimarySiteID,
		AssignedSiteIDs: assigned,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, db.Conflictf("an account with this email already exists")
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64, scope auth.Scope) (*User, error) {
	return s.users.GetByID(ctx, id, scope)
}

func (s *Service) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, filter, scope, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	if patch.Role != nil && !auth.ValidRole(*patch.Role) {
		return nil, db.Invalidf("invalid role: %s", *patch.Role)
	}
	if patch.Email != nil && *patch.Email == "" {
		return nil, db.Invalidf("email cannot be empty")
	}
	if patch.NewPassword != nil {
		if *patch.NewPassword == "" {
			return nil, db.Invalidf("new_password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.NewPassword), bcryptCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.NewPassword = &hashed
	}
	u, err := s.users.Update(ctx, id, patch)
	if errors.Is(err, db.ErrConflict) {
		return nil, db.Conflictf("an account with this email already exists")
	}
	return u, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// Authenticate resolves login credentials. The two failure modes stay
// distinct so the surface can report them differently, but both deny.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadPassword
	}
	return u, nil
}
