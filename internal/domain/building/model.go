package building

import "time"

// Building belongs to exactly one site. SiteName is a read-side join for
// display and is never written back.
type Building struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SiteID    int64     `json:"site_id"`
	SiteName  string    `json:"site_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Patch struct {
	Name     *string `json:"name"`
	SiteID   *int64  `json:"site_id"`
	IsActive *bool   `json:"is_active"`
}

type ListFilter struct {
	Search  string
	SiteID  int64 // 0 means no filter
	Status  string
	SortKey string
	SortDir string
}
