package expiry

import (
	"regexp"
	"strings"
	"time"
)

// Used by the secondary ingestion path, where the caller wants a product name
// and best-before duration alongside the date.

// bestBeforePatterns covers the common phrasings of a shelf-life duration.
// First match wins; the raw digits are kept as printed and left for the
// caller to interpret.
var bestBeforePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Best\s*Before|BB|BBE)\s*(?:date)?\s*[:\-]?\s*(\d+)\s*(?:months?|mon|m)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:months?|mon|m)\s*(?:Best\s*Before|BB|BBE)`),
	regexp.MustCompile(`(?i)(?:Use\s*within|Use\s*by|Consume\s*within)\s*(\d+)\s*(?:months?|mon|m)`),
}

// productExpiryPatterns is the narrower subset used here: keyword-anchored
// first, then full dates with 4- and 2-digit years.
var productExpiryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:EXP|EXPIRY|EXPIRES|EXPIRE|Best\s*Before|Use\s*By)\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})`),
	regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2})`),
}

// productDateFormats is tried in order against the matched substring.
// Day-first formats come first, so DD/MM is preferred over MM/DD whenever
// both parse.
var productDateFormats = []string{
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"02-01-06",
	"01/02/2006",
}

var dateShapeRe = regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`)

// Lines containing any of these are label boilerplate, not a product name.
var productNameStopWords = []string{"exp", "expiry", "expires", "best", "before", "use", "by"}

// ProductInfo is a scanned label broken into its useful parts. Absent fields
// are empty strings.
type ProductInfo struct {
	ProductName      string
	ExpiryDate       string // canonical DD/MM/YYYY
	BestBeforeMonths string
}

// ExtractProductInfo scans label text for a best-before duration, an expiry
// date and a best-guess product name line. Each part is extracted
// independently; any of them may come back empty.
func ExtractProductInfo(text string) ProductInfo {
	var info ProductInfo

	for _, re := range bestBeforePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			info.BestBeforeMonths = m[1]
			break
		}
	}

	info.ExpiryDate = extractProductExpiry(text)
	info.ProductName = extractProductName(text)
	return info
}

func extractProductExpiry(text string) string {
	for _, re := range productExpiryPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, layout := range productDateFormats {
			if t, err := time.ParseInLocation(layout, m[1], time.Local); err == nil {
				return FromTime(t).String()
			}
		}
	}
	return ""
}

// extractProductName picks the first line that looks like a human-written
// product name: reasonable length, no date, none of the expiry boilerplate
// words and not purely numeric.
func extractProductName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 2 || len(line) >= 60 {
			continue
		}
		if dateShapeRe.MatchString(line) {
			continue
		}
		if containsStopWord(line) {
			continue
		}
		if isAllDigits(line) {
			continue
		}
		return line
	}
	return ""
}

func containsStopWord(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range productNameStopWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
