package expiry

import "regexp"

// datePattern pairs a matcher with the resolver for candidates it yields.
// Keeping the pairs in an ordered table makes the precedence explicit and
// lets each family be tested in isolation.
type datePattern struct {
	name    string
	re      *regexp.Regexp
	resolve func(match []string) (Date, bool)
}

// resolveToken feeds the first capture group through Normalize.
func resolveToken(match []string) (Date, bool) {
	return Normalize(match[1])
}

// expiryPatterns is tried top-down. Keyword-anchored dates carry the highest
// confidence; the bare shapes follow in decreasing specificity so that
// numeric noise like batch codes loses to anything more date-like.
var expiryPatterns = []datePattern{
	{
		name: "keyword-anchored date",
		re:   regexp.MustCompile(`(?i)(?:EXP|EXPIRY|EXPIRES|EXPIRE|Best\s*Before|Use\s*By)\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
		resolve: resolveToken,
	},
	{
		name:    "full date",
		re:      regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})`),
		resolve: resolveToken,
	},
	{
		name:    "short date",
		re:      regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2})`),
		resolve: resolveToken,
	},
	{
		name: "month/year",
		re:   regexp.MustCompile(`(\d{1,2}[/\-.]\d{4})`),
		resolve: func(match []string) (Date, bool) {
			m := monthYearRe.FindStringSubmatch(match[1])
			if m == nil {
				return Date{}, false
			}
			return resolveMonthYear(m[1], m[2])
		},
	},
	{
		name: "month/short year",
		re:   regexp.MustCompile(`(\d{1,2}[/\-.]\d{2})`),
		resolve: func(match []string) (Date, bool) {
			m := monthYearShortRe.FindStringSubmatch(match[1])
			if m == nil {
				return Date{}, false
			}
			return resolveMonthYearShort(m[1], m[2])
		},
	},
	{
		name: "bare year",
		re:   regexp.MustCompile(`(\d{4})`),
		resolve: func(match []string) (Date, bool) {
			return resolveBareYear(match[1])
		},
	},
}

// ExtractExpiryDate scans free text (typically OCR output) for an expiry
// date. Each pattern family collects all of its matches in document order;
// the first candidate that resolves to a valid date wins. Families are
// exhausted strictly in order, so a keyword-anchored date always beats a
// stray bare year further up the page.
func ExtractExpiryDate(text string) (Date, bool) {
	for _, p := range expiryPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			if d, ok := p.resolve(m); ok {
				return d, true
			}
		}
	}
	return Date{}, false
}
