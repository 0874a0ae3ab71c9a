package expiry

import (
	"errors"
	"testing"
	"time"
)

var voiceNow = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.Local)

func TestExtractFromTranscript(t *testing.T) {
	tests := []struct {
		name        string
		transcript  string
		wantProduct string
		wantDate    string
	}{
		{
			name:        "product with trigger verb and relative date",
			transcript:  "the milk is expiring tomorrow",
			wantProduct: "the milk",
			wantDate:    "11/03/2026",
		},
		{
			name:        "day after tomorrow",
			transcript:  "eggs are expiring day after tomorrow",
			wantProduct: "eggs",
			wantDate:    "12/03/2026",
		},
		{
			name:        "ordinal absolute date",
			transcript:  "cheese will expire 2nd January 2027",
			wantProduct: "cheese",
			wantDate:    "02/01/2027",
		},
		{
			name:        "slash date",
			transcript:  "yogurt is going to expire 15/04/2026",
			wantProduct: "yogurt",
			wantDate:    "15/04/2026",
		},
		{
			name:        "add command without date",
			transcript:  "add ketchup",
			wantProduct: "ketchup",
			wantDate:    "",
		},
		{
			name:        "add command with date keeps only the date",
			transcript:  "add milk expiring tomorrow",
			wantProduct: "",
			wantDate:    "11/03/2026",
		},
		{
			name:        "date only",
			transcript:  "something about tomorrow",
			wantProduct: "",
			wantDate:    "11/03/2026",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractFromTranscript(tt.transcript, voiceNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ProductName != tt.wantProduct {
				t.Errorf("product = %q, want %q", got.ProductName, tt.wantProduct)
			}
			gotDate := ""
			if !got.Date.IsZero() {
				gotDate = got.Date.String()
			}
			if gotDate != tt.wantDate {
				t.Errorf("date = %q, want %q", gotDate, tt.wantDate)
			}
		})
	}
}

func TestExtractFromTranscriptNothing(t *testing.T) {
	_, err := ExtractFromTranscript("please remind me later", voiceNow)
	if !errors.Is(err, ErrNothingExtracted) {
		t.Fatalf("err = %v, want ErrNothingExtracted", err)
	}
}

func TestResolveDatePhrase(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
		ok     bool
	}{
		{"tomorrow", "11/03/2026", true},
		{"Day After Tomorrow", "12/03/2026", true},
		{"2nd January 2027", "02/01/2027", true},
		{"21st march 2026", "21/03/2026", true},
		{"3 June 2026", "03/06/2026", true},
		{"15/04/2026", "15/04/2026", true},
		{"04/2026", "30/04/2026", true}, // month only prefers end of range
		{"31st February 2026", "", false},
		{"5th Smarch 2026", "", false},
		{"gibberish", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := ResolveDatePhrase(tt.phrase, voiceNow)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
