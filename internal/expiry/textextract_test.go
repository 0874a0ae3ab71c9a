package expiry

import "testing"

func TestExtractExpiryDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "keyword anchored",
			text: "ACME MILK\nEXP: 01/06/2025\nLOT 20240199",
			want: "01/06/2025",
		},
		{
			name: "keyword beats stray year",
			text: "packed 2024\nEXP: 01/06/2025",
			want: "01/06/2025",
		},
		{
			name: "best before keyword",
			text: "Best Before 15/03/26",
			want: "15/03/2026",
		},
		{
			name: "use by with dash separator",
			text: "USE BY - 02-10-2027",
			want: "02/10/2027",
		},
		{
			name: "bare full date",
			text: "some label text 14/08/2026 more text",
			want: "14/08/2026",
		},
		{
			name: "bare short date",
			text: "lot A 03/09/26",
			want: "03/09/2026",
		},
		{
			name: "month and year resolves to month end",
			text: "BBE 04/2026",
			want: "30/04/2026",
		},
		{
			name: "month and short year",
			text: "exp to month 07/28",
			want: "31/07/2028",
		},
		{
			name: "bare year",
			text: "guaranteed through 2026",
			want: "31/12/2026",
		},
		{
			name: "invalid candidate falls through to next match",
			text: "ref 31/02/2026 then 15/03/2026",
			want: "15/03/2026",
		},
		{
			name: "batch code year outside window ignored",
			text: "LOT 1987",
			ok:   false,
		},
		{
			name: "nothing date-like",
			text: "organic oat drink, shake well",
			ok:   false,
		},
		{
			name: "empty",
			text: "",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantOK := tt.ok || tt.want != ""
			got, ok := ExtractExpiryDate(tt.text)
			if ok != wantOK {
				t.Fatalf("ok = %v, want %v (got %v)", ok, wantOK, got)
			}
			if ok && got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractExpiryDatePatternOrder(t *testing.T) {
	// a later, more specific occurrence never beats an earlier family:
	// the bare full date wins over the month/year shape even though the
	// month/year token appears first in the document
	text := "since 05/2026 ... expires around 14/08/2026"
	got, ok := ExtractExpiryDate(text)
	if !ok {
		t.Fatal("expected a date")
	}
	if got.String() != "14/08/2026" {
		t.Errorf("got %s, want 14/08/2026", got)
	}
}
