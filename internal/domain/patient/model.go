package patient

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time component. It accepts both
// "2006-01-02" and full RFC 3339 timestamps on input and always renders
// as "2006-01-02".
type Date struct{ time.Time }

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{t.UTC().Truncate(24 * time.Hour)}
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date{v}
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Patient belongs to exactly one site, optionally to one building within
// it. The site FK drives access scoping; SiteName and BuildingName are
// read-side joins, never persisted. IsActive is a business status, not a
// deletion marker: deletes are hard and cascade to activities.
type Patient struct {
	ID                 int64     `json:"id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Birthdate          Date      `json:"birthdate"`
	Gender             string    `json:"gender"`
	PhoneNumber        string    `json:"phone_number"`
	ContactName        string    `json:"contact_name"`
	ContactPhoneNumber string    `json:"contact_phone_number"`
	Insurance          string    `json:"insurance"`
	IsActive           bool      `json:"is_active"`
	SiteID             int64     `json:"site_id"`
	BuildingID         *int64    `json:"building_id"`
	SiteName           string    `json:"site_name,omitempty"`
	BuildingName       string    `json:"building_name,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// FullName is the display form used in search and activity enrichment.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Patch struct {
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Birthdate          *Date   `json:"birthdate"`
	Gender             *string `json:"gender"`
	PhoneNumber        *string `json:"phone_number"`
	ContactName        *string `json:"contact_name"`
	ContactPhoneNumber *string `json:"contact_phone_number"`
	Insurance          *string `json:"insurance"`
	IsActive           *bool   `json:"is_active"`
	SiteID             *int64  `json:"site_id"`
	BuildingID         *int64  `json:"building_id"`
}

type ListFilter struct {
	Search     string
	SiteID     int64 // 0 means no filter
	BuildingID int64 // 0 means no filter
	Status     string
	SortKey    string
	SortDir    string
}
