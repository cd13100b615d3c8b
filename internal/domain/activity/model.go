package activity

import "time"

// Activity records time a user spent on a patient. It carries no site
// column of its own; its site is the owning patient's site, which is how
// scope checks and the site_name join below resolve.
type Activity struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	UserID          int64     `json:"user_id"`
	ActivityType    string    `json:"activity_type"`
	PharmFlag       bool      `json:"pharm_flag"`
	Notes           string    `json:"notes"`
	ServiceStart    time.Time `json:"service_start"`
	ServiceEnd      time.Time `json:"service_end"`
	DurationMinutes float64   `json:"duration_minutes"`
	PatientName     string    `json:"patient_name,omitempty"`
	UserInitials    string    `json:"user_initials,omitempty"`
	SiteID          int64     `json:"site_id,omitempty"`
	SiteName        string    `json:"site_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Patch struct {
	PatientID       *int64     `json:"patient_id"`
	UserID          *int64     `json:"user_id"`
	ActivityType    *string    `json:"activity_type"`
	PharmFlag       *bool      `json:"pharm_flag"`
	Notes           *string    `json:"notes"`
	ServiceStart    *time.Time `json:"service_start"`
	ServiceEnd      *time.Time `json:"service_end"`
	DurationMinutes *float64   `json:"duration_minutes"`
}

type ListFilter struct {
	Search       string
	PatientID    int64   // 0 means no filter
	PatientIDs   []int64 // empty means no filter; used by the batch endpoint
	SiteID       int64 // 0 means no filter
	ActivityType string
	PharmFlag    string // "true", "false" or anything else for no filter
	SortKey      string
	SortDir      string
}
