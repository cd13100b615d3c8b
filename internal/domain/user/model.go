package user

import "time"

// User is an account that logs care activities. The password hash never
// serializes; PrimarySiteName and AssignedSiteNames are read-side joins.
type User struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              string    `json:"role"`
	PrimarySiteID     int64     `json:"primary_site_id"`
	AssignedSiteIDs   []int64   `json:"assigned_site_ids"`
	PrimarySiteName   string    `json:"primary_site,omitempty"`
	AssignedSiteNames []string  `json:"assigned_sites,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// FullName is the display form used in list responses and token claims.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CreateRequest carries the plaintext password exactly once, inbound.
type CreateRequest struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Role            string  `json:"role"`
	PrimarySiteID   int64   `json:"primary_site_id"`
	AssignedSiteIDs []int64 `json:"assigned_site_ids"`
}

type Patch struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Email           *string  `json:"email"`
	Role            *string  `json:"role"`
	PrimarySiteID   *int64   `json:"primary_site_id"`
	AssignedSiteIDs *[]int64 `json:"assigned_site_ids"`
	NewPassword     *string  `json:"new_password"`
}

type ListFilter struct {
	Search  string
	Role    string // "" or "all" means no filter
	SiteID  int64  // 0 means no filter; matches primary or assigned
	SortKey string
	SortDir string
}
