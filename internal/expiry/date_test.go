package expiry

import (
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		// month/year resolves to month end
		{"04/2026", "30/04/2026", true},
		{"12/2026", "31/12/2026", true},
		{"02/2024", "29/02/2024", true}, // leap year
		{"02/2025", "28/02/2025", true},
		{"2-2027", "28/02/2027", true},
		{"04.2026", "30/04/2026", true},
		{"13/2026", "", false}, // month out of range
		{"04/1999", "", false}, // year below window
		{"04/2101", "", false}, // year above window

		// month/short-year windows into 2000-2099
		{"04/26", "30/04/2026", true},
		{"11/31", "30/11/2031", true},

		// bare year resolves to 31/12
		{"2026", "31/12/2026", true},
		{"1999", "", false},
		{"2101", "", false},

		// day/month/year, day first
		{"15/03/2026", "15/03/2026", true},
		{"15/03/26", "15/03/2026", true},
		{"1/6/2025", "01/06/2025", true},
		{"15-03-2026", "15/03/2026", true},
		{"15.03.2026", "15/03/2026", true},
		{"31/04/2026", "", false}, // April has 30 days
		{"29/02/2025", "", false}, // not a leap year
		{"00/03/2026", "", false},
		{"15/13/2026", "", false},

		// junk
		{"", "", false},
		{"not a date", "", false},
		{"15/03/2026/99", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	// every valid (d, m, y) formatted canonically must normalize back to itself
	for _, y := range []int{2000, 2024, 2025, 2100} {
		for m := 1; m <= 12; m++ {
			for _, d := range []int{1, 15, lastDayOfMonth(m, y)} {
				raw := fmt.Sprintf("%02d/%02d/%04d", d, m, y)
				got, ok := Normalize(raw)
				if !ok {
					t.Fatalf("Normalize(%q) failed", raw)
				}
				if got.String() != raw {
					t.Errorf("round trip %q -> %q", raw, got)
				}
			}
		}
	}
}

func TestParseCanonical(t *testing.T) {
	d, ok := ParseCanonical("30/04/2026")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if d.Day != 30 || d.Month != 4 || d.Year != 2026 {
		t.Errorf("got %+v", d)
	}

	for _, bad := range []string{"", "31/04/2026", "2026", "04/2026", "no"} {
		if _, ok := ParseCanonical(bad); ok {
			t.Errorf("ParseCanonical(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		month, year, want int
	}{
		{1, 2026, 31},
		{4, 2026, 30},
		{2, 2024, 29},
		{2, 2025, 28},
		{12, 2100, 31},
	}
	for _, tt := range tests {
		if got := lastDayOfMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("lastDayOfMonth(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}
