package site

import "time"

// Site is the root of the access scope: every patient and building belongs
// to exactly one site, and non-admin users see only rows whose site is in
// their assignment set.
type Site struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Patch lists every updatable field as an optional value; only fields that
// are actually set are written, so false and empty-string updates are
// honored.
type Patch struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	IsActive *bool   `json:"is_active"`
}

// SiteBuilding is the building summary nested under a site in the combined
// sites-and-buildings listing.
type SiteBuilding struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// SiteWithBuildings is a site with its buildings inlined, for callers that
// need the whole hierarchy in one round trip.
type SiteWithBuildings struct {
	Site
	Buildings []SiteBuilding `json:"buildings"`
}

// ListFilter holds the structured filters accepted by the list endpoint.
// Empty or "all" values mean no filter.
type ListFilter struct {
	Search  string
	Status  string
	SortKey string
	SortDir string
}
