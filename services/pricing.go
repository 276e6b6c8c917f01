package services

import (
	"sort"
	"time"

	"rental-backend/models"
)

// NightsBetween counts calendar nights in [checkIn, checkOut).
func NightsBetween(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// NightlyPrice prices a single night: start from the room base price and
// apply every rate covering that night, in order. FIXED rates replace
// the running price outright; PERCENTAGE rates add value% of the
// running price, so stacking order matters.
func NightlyPrice(basePrice float64, night time.Time, rates []models.PeakSeasonRate) float64 {
	price := basePrice
	for _, r := range rates {
		if !r.Covers(night) {
			continue
		}
		switch r.RateType {
		case models.RateTypeFixed:
			price = r.Value
		case models.RateTypePercentage:
			price += price * r.Value / 100
		}
	}
	return price
}

// CalculateStayPrice sums NightlyPrice over every night of the stay.
// Rates are applied in a deterministic order (start date, then id) so
// overlapping percentage rates always stack the same way regardless of
// how the query returned them.
func CalculateStayPrice(basePrice float64, checkIn, checkOut time.Time, rates []models.PeakSeasonRate) float64 {
	ordered := make([]models.PeakSeasonRate, len(rates))
	copy(ordered, rates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].StartDate.Equal(ordered[j].StartDate) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})

	total := 0.0
	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		total += NightlyPrice(basePrice, night, ordered)
	}
	return total
}
