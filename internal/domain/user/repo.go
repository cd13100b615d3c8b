package user

import (
	"context"

	"github.com/carepoint/timetrack/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64, scope auth.Scope) (*User, error)
	// GetByEmail is the login lookup: case-insensitive, unscoped, returns
	// the password hash.
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*User, int, error)
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
	Delete(ctx context.Context, id int64) error
}
