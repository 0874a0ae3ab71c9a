package expiry

import (
	"testing"
	"time"
)

var today = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		window int
		want   Freshness
	}{
		{"expired long ago", "01/01/2000", ListWindowDays, Expired},
		{"expired yesterday", "09/03/2026", ListWindowDays, Expired},
		{"expires today", "10/03/2026", ListWindowDays, Near},
		{"inside list window", "17/03/2026", ListWindowDays, Near},
		{"just outside list window", "18/03/2026", ListWindowDays, Safe},
		{"inside alert window", "13/03/2026", AlertWindowDays, Near},
		{"outside alert window but inside list window", "15/03/2026", AlertWindowDays, Safe},
		{"far future", "01/01/2030", ListWindowDays, Safe},
		{"absent date is safe", "", ListWindowDays, Safe},
		{"unparseable date is safe", "soon", ListWindowDays, Safe},
		{"partial date is safe on read", "04/2026", ListWindowDays, Safe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.date, today, tt.window); got != tt.want {
				t.Errorf("Classify(%q, today, %d) = %s, want %s", tt.date, tt.window, got, tt.want)
			}
		})
	}
}

func TestClassifyExpiredForAnyLaterToday(t *testing.T) {
	date := "01/01/2000"
	for _, d := range []time.Time{
		time.Date(2000, time.January, 2, 0, 0, 0, 0, time.Local),
		time.Date(2010, time.June, 15, 12, 0, 0, 0, time.Local),
		time.Date(2099, time.December, 31, 23, 59, 0, 0, time.Local),
	} {
		if got := Classify(date, d, ListWindowDays); got != Expired {
			t.Errorf("Classify(%q, %s) = %s, want expired", date, d.Format("2006-01-02"), got)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		date string
		want int
		ok   bool
	}{
		{"10/03/2026", 0, true},
		{"11/03/2026", 1, true},
		{"09/03/2026", -1, true},
		{"10/04/2026", 31, true},
		{"", 0, false},
		{"31/02/2026", 0, false},
	}
	for _, tt := range tests {
		got, ok := DaysUntil(tt.date, today)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DaysUntil(%q) = %d, %v; want %d, %v", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}
