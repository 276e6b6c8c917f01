package models

import (
	"time"

	"gorm.io/gorm"
)

// Rate types for peak season adjustments.
const (
	RateTypeFixed      = "FIXED"      // sets the nightly price to Value
	RateTypePercentage = "PERCENTAGE" // adds Value percent on top of the current nightly price
)

// PeakSeasonRate is a date-bounded price override on a room. StartDate
// and EndDate are inclusive calendar dates. Overlapping rates are not
// mutually exclusive: every rate covering a night applies.
type PeakSeasonRate struct {
	gorm.Model

	RoomID    uint      `gorm:"index;column:room_id" json:"room_id"`
	StartDate time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date" json:"end_date"`
	RateType  string    `gorm:"column:rate_type;size:16" json:"rate_type"`
	Value     float64   `gorm:"column:value" json:"value"`
}

// Covers reports whether day falls inside the rate's date range.
func (r PeakSeasonRate) Covers(day time.Time) bool {
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}
