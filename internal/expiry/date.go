package expiry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Inferred and partial dates are only accepted inside a plausible window;
// anything outside it is more likely a batch code than an expiry year.
const (
	minInferredYear = 2000
	maxInferredYear = 2100
)

// Canonical is the wire format for expiry dates everywhere in the system.
const Canonical = "02/01/2006"

// Date is a valid Gregorian calendar day. The zero value is not a valid date.
type Date struct {
	Day   int
	Month int
	Year  int
}

// String serializes to the canonical DD/MM/YYYY form.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// IsZero reports whether d is the zero (invalid) date.
func (d Date) IsZero() bool {
	return d.Day == 0 && d.Month == 0 && d.Year == 0
}

// Time returns midnight of d in local time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.Local)
}

// FromTime truncates t to a calendar day.
func FromTime(t time.Time) Date {
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

var (
	monthYearRe      = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{4})$`)
	monthYearShortRe = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{2})$`)
	bareYearRe       = regexp.MustCompile(`^(\d{4})$`)
	dayMonthYearRe   = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})$`)
)

// Normalize parses a raw date-like token into a calendar date. The token is
// matched against the accepted shapes top-down and the first structural match
// wins:
//
//  1. M/YYYY resolves to the last day of that month
//  2. M/YY as above with the year windowed into 2000-2099
//  3. a bare YYYY resolves to 31/12 of that year
//  4. anything else is parsed as day/month/year, day first
//
// Month/year tokens resolve to month-end because a label that says "expires
// 04/2026" is good through the end of April. Unrecognized or invalid input
// returns ok=false; callers treat that as "no date extracted", not an error.
func Normalize(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)

	if m := monthYearRe.FindStringSubmatch(raw); m != nil {
		return resolveMonthYear(m[1], m[2])
	}
	if m := monthYearShortRe.FindStringSubmatch(raw); m != nil {
		return resolveMonthYearShort(m[1], m[2])
	}
	if m := bareYearRe.FindStringSubmatch(raw); m != nil {
		return resolveBareYear(m[1])
	}
	if m := dayMonthYearRe.FindStringSubmatch(raw); m != nil {
		return resolveDayMonthYear(m[1], m[2], m[3])
	}
	return Date{}, false
}

// ParseCanonical parses a stored DD/MM/YYYY string. Empty or malformed input
// returns ok=false.
func ParseCanonical(s string) (Date, bool) {
	t, err := time.ParseInLocation(Canonical, strings.TrimSpace(s), time.Local)
	if err != nil {
		return Date{}, false
	}
	return FromTime(t), true
}

func resolveMonthYear(monthStr, yearStr string) (Date, bool) {
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	return monthEnd(month, year)
}

func resolveMonthYearShort(monthStr, yearStr string) (Date, bool) {
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	return monthEnd(month, year+2000)
}

func resolveBareYear(yearStr string) (Date, bool) {
	year, _ := strconv.Atoi(yearStr)
	if year < minInferredYear || year > maxInferredYear {
		return Date{}, false
	}
	return Date{Day: 31, Month: 12, Year: year}, true
}

func resolveDayMonthYear(dayStr, monthStr, yearStr string) (Date, bool) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	if len(yearStr) == 2 {
		year += 2000
	}
	if month < 1 || month > 12 {
		return Date{}, false
	}
	if day < 1 || day > lastDayOfMonth(month, year) {
		return Date{}, false
	}
	return Date{Day: day, Month: month, Year: year}, true
}

func monthEnd(month, year int) (Date, bool) {
	if month < 1 || month > 12 || year < minInferredYear || year > maxInferredYear {
		return Date{}, false
	}
	return Date{Day: lastDayOfMonth(month, year), Month: month, Year: year}, true
}

func lastDayOfMonth(month, year int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
