package services

import (
	"testing"
	"time"

	"rental-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNightsBetween(t *testing.T) {
	if n := NightsBetween(date(2025, 6, 1), date(2025, 6, 5)); n != 4 {
		t.Fatalf("expected 4 nights, got %d", n)
	}
	if n := NightsBetween(date(2025, 6, 1), date(2025, 6, 2)); n != 1 {
		t.Fatalf("expected 1 night, got %d", n)
	}
	if n := NightsBetween(date(2025, 6, 5), date(2025, 6, 5)); n != 0 {
		t.Fatalf("expected 0 nights for empty range, got %d", n)
	}
	if n := NightsBetween(date(2025, 6, 5), date(2025, 6, 1)); n != 0 {
		t.Fatalf("expected 0 nights for inverted range, got %d", n)
	}
}

func TestCalculateStayPrice_NoRates(t *testing.T) {
	total := CalculateStayPrice(750000, date(2025, 6, 1), date(2025, 6, 4), nil)
	if total != 3*750000 {
		t.Fatalf("expected %d, got %f", 3*750000, total)
	}
}

func TestCalculateStayPrice_PercentageAllNights(t *testing.T) {
	rates := []models.PeakSeasonRate{
		{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 3), RateType: models.RateTypePercentage, Value: 20},
	}
	total := CalculateStayPrice(1000000, date(2025, 6, 1), date(2025, 6, 4), rates)
	if total != 3600000 {
		t.Fatalf("expected 3600000, got %f", total)
	}
}

func TestNightlyPrice_FixedOverridesBase(t *testing.T) {
	rates := []models.PeakSeasonRate{
		{StartDate: date(2025, 12, 24), EndDate: date(2025, 12, 26), RateType: models.RateTypeFixed, Value: 2500000},
	}
	if p := NightlyPrice(900000, date(2025, 12, 25), rates); p != 2500000 {
		t.Fatalf("expected fixed 2500000, got %f", p)
	}
	if p := NightlyPrice(900000, date(2025, 12, 27), rates); p != 900000 {
		t.Fatalf("expected base 900000 outside range, got %f", p)
	}
}

func TestNightlyPrice_PercentageFormula(t *testing.T) {
	rates := []models.PeakSeasonRate{
		{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 1), RateType: models.RateTypePercentage, Value: 15},
	}
	got := NightlyPrice(200000, date(2025, 6, 1), rates)
	want := 200000 + 200000*15.0/100.0
	if got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestCalculateStayPrice_StackingIsDeterministic(t *testing.T) {
	pct := models.PeakSeasonRate{
		StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 10),
		RateType: models.RateTypePercentage, Value: 10,
	}
	pct.ID = 1
	fixed := models.PeakSeasonRate{
		StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 10),
		RateType: models.RateTypeFixed, Value: 500000,
	}
	fixed.ID = 2

	// one night covered by both rates; the fixed rate starts later so it
	// applies second and wins
	a := CalculateStayPrice(100000, date(2025, 6, 2), date(2025, 6, 3), []models.PeakSeasonRate{pct, fixed})
	b := CalculateStayPrice(100000, date(2025, 6, 2), date(2025, 6, 3), []models.PeakSeasonRate{fixed, pct})
	if a != b {
		t.Fatalf("rate order in input changed the result: %f vs %f", a, b)
	}
	if a != 500000 {
		t.Fatalf("expected later fixed rate to win, got %f", a)
	}
}

func TestCalculateStayPrice_PercentagesStack(t *testing.T) {
	r1 := models.PeakSeasonRate{
		StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 1),
		RateType: models.RateTypePercentage, Value: 10,
	}
	r1.ID = 1
	r2 := models.PeakSeasonRate{
		StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 1),
		RateType: models.RateTypePercentage, Value: 10,
	}
	r2.ID = 2

	// 100000 * 1.1 * 1.1 = 121000, sequential application not additive
	got := CalculateStayPrice(100000, date(2025, 6, 1), date(2025, 6, 2), []models.PeakSeasonRate{r2, r1})
	if got != 121000 {
		t.Fatalf("expected 121000, got %f", got)
	}
}

func TestCalculateStayPrice_AdditiveAcrossNights(t *testing.T) {
	rates := []models.PeakSeasonRate{
		{StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 2), RateType: models.RateTypePercentage, Value: 50},
	}
	checkIn, checkOut := date(2025, 6, 1), date(2025, 6, 4)

	total := CalculateStayPrice(100000, checkIn, checkOut, rates)
	sum := 0.0
	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		sum += NightlyPrice(100000, night, rates)
	}
	if total != sum {
		t.Fatalf("total %f differs from per-night sum %f", total, sum)
	}
	if total != 100000+150000+100000 {
		t.Fatalf("expected 350000, got %f", total)
	}
}
