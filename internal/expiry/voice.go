package expiry

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNothingExtracted is returned when a transcript yields neither a product
// name nor a date. Callers surface the transcript back to the user instead of
// swallowing this.
var ErrNothingExtracted = errors.New("could not extract product or expiry from transcript")

var (
	datePhraseRe = regexp.MustCompile(`(?i)(tomorrow|day after tomorrow|\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]+\s+\d{4}|\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`)

	productPhraseRe = regexp.MustCompile(`(?i)([a-zA-Z0-9 ]+?)\s+(?:is|are|will be|going to be|to be|expiring|expires|will expire|is going to expire)`)

	addCommandRe = regexp.MustCompile(`(?i)add\s+(\w+)`)

	ordinalDateRe = regexp.MustCompile(`(?i)^(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\s+(\d{4})$`)
)

var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// VoiceResult is a partially-filled extraction; either field may be empty but
// never both.
type VoiceResult struct {
	ProductName string
	Date        Date // zero when no date phrase resolved
}

// ExtractFromTranscript is the regex fallback for spoken sentences, used when
// the language-model path is unavailable or fails. It looks for a date phrase
// first; when one is present the product name is taken from a phrase followed
// by a trigger verb ("milk is expiring ..."), otherwise from an "add <word>"
// command. A partial result is fine; only a fully empty one is an error.
func ExtractFromTranscript(transcript string, now time.Time) (VoiceResult, error) {
	var res VoiceResult

	var datePhrase string
	if m := datePhraseRe.FindStringSubmatch(transcript); m != nil {
		datePhrase = m[1]
	}

	if datePhrase != "" {
		if m := productPhraseRe.FindStringSubmatch(transcript); m != nil {
			name := strings.TrimSpace(m[1])
			// Command phrasing like "add milk expiring tomorrow" captures
			// "add milk"; that is the command, not the product, so the name
			// stays empty and the caller handles the partial extraction.
			if !strings.HasPrefix(strings.ToLower(name), "add ") {
				res.ProductName = name
			}
		}
	} else {
		if m := addCommandRe.FindStringSubmatch(transcript); m != nil {
			res.ProductName = m[1]
		}
	}

	if datePhrase != "" {
		if d, ok := ResolveDatePhrase(datePhrase, now); ok {
			res.Date = d
		}
	}

	if res.ProductName == "" && res.Date.IsZero() {
		return VoiceResult{}, ErrNothingExtracted
	}
	return res, nil
}

// ResolveDatePhrase turns a relative or absolute spoken date phrase into a
// calendar date. Month/year-only shapes resolve to the end of the range, the
// same conservative choice Normalize makes.
func ResolveDatePhrase(phrase string, now time.Time) (Date, bool) {
	phrase = strings.TrimSpace(phrase)

	switch strings.ToLower(phrase) {
	case "tomorrow":
		return FromTime(now.AddDate(0, 0, 1)), true
	case "day after tomorrow":
		return FromTime(now.AddDate(0, 0, 2)), true
	}

	if m := ordinalDateRe.FindStringSubmatch(phrase); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return Date{}, false
		}
		year, _ := strconv.Atoi(m[3])
		if day < 1 || day > lastDayOfMonth(month, year) {
			return Date{}, false
		}
		return Date{Day: day, Month: month, Year: year}, true
	}

	return Normalize(phrase)
}
