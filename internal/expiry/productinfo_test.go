package expiry

import "testing"

func TestExtractProductInfo(t *testing.T) {
	text := "Golden Oat Clusters\n500g NET\nBest Before 6 months\nEXP: 15/03/2026\n12345678"

	info := ExtractProductInfo(text)
	if info.ProductName != "Golden Oat Clusters" {
		t.Errorf("product name = %q", info.ProductName)
	}
	if info.BestBeforeMonths != "6" {
		t.Errorf("best before months = %q", info.BestBeforeMonths)
	}
	if info.ExpiryDate != "15/03/2026" {
		t.Errorf("expiry date = %q", info.ExpiryDate)
	}
}

func TestExtractProductInfoBestBeforePhrasings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"best before n months", "Best Before 9 months", "9"},
		{"bbe abbreviation", "BBE: 12 mon", "12"},
		{"months before keyword", "18 months BBE", "18"},
		{"use within", "Use within 3 months of opening", "3"},
		{"consume within", "Consume within 24 m", "24"},
		{"no duration", "fresh product", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractProductInfo(tt.text).BestBeforeMonths; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractProductInfoDayFirstPreferred(t *testing.T) {
	// 04/03/2026 parses as both DD/MM and MM/DD; day-first is tried first
	info := ExtractProductInfo("EXP 04/03/2026")
	if info.ExpiryDate != "04/03/2026" {
		t.Errorf("expiry date = %q, want 04/03/2026", info.ExpiryDate)
	}

	// 25/12/2026 only parses day-first
	info = ExtractProductInfo("EXP 25/12/2026")
	if info.ExpiryDate != "25/12/2026" {
		t.Errorf("expiry date = %q, want 25/12/2026", info.ExpiryDate)
	}

	// 12/25/2026 fails day-first and falls through to MM/DD/YYYY
	info = ExtractProductInfo("EXP 12/25/2026")
	if info.ExpiryDate != "25/12/2026" {
		t.Errorf("expiry date = %q, want 25/12/2026", info.ExpiryDate)
	}
}

func TestExtractProductName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "skips short and long lines",
			text: "ab\n" + "x123456789x123456789x123456789x123456789x123456789x123456789\nReal Product",
			want: "Real Product",
		},
		{
			name: "skips lines with dates",
			text: "batch 01/02/2026 run\nTomato Passata",
			want: "Tomato Passata",
		},
		{
			name: "skips stop words",
			text: "Best before end\nUse by date printed\nGreek Yogurt",
			want: "Greek Yogurt",
		},
		{
			name: "skips purely numeric lines",
			text: "8901234\nDark Chocolate 70%",
			want: "Dark Chocolate 70%",
		},
		{
			name: "no qualifying line",
			text: "ab\n12345\nexp soon",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractProductInfo(tt.text).ProductName; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
