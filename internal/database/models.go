package database

import "time"

// PublishedYear is a year whose holiday set has been stored.
type PublishedYear struct {
	Year         int        `json:"year"`
	HolidayCount int        `json:"holiday_count"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}
