package expiry

import "time"

// Freshness of an item relative to today.
type Freshness string

const (
	Safe    Freshness = "safe"
	Near    Freshness = "near"
	Expired Freshness = "expired"
)

// The two alert windows are intentionally different: inventory listings and
// statistics warn a week out, the scheduled email only nags about the last
// three days. Do not unify them without a product decision.
const (
	ListWindowDays  = 7
	AlertWindowDays = 3
)

// DaysUntil returns the whole days between today and a stored canonical date.
// Negative for past dates, ok=false when the date is absent or unparseable.
func DaysUntil(canonical string, today time.Time) (int, bool) {
	d, ok := ParseCanonical(canonical)
	if !ok {
		return 0, false
	}
	// Date-only arithmetic in UTC so DST transitions cannot shave a day.
	a := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	b := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24), true
}

// Classify maps a stored expiry date and today onto a freshness bucket using
// the given near-window. An absent or unparseable date classifies as safe:
// failing to read a label must never block item creation.
func Classify(canonical string, today time.Time, windowDays int) Freshness {
	days, ok := DaysUntil(canonical, today)
	if !ok {
		return Safe
	}
	switch {
	case days < 0:
		return Expired
	case days <= windowDays:
		return Near
	default:
		return Safe
	}
}
