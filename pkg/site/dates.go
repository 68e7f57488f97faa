package site

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sitelog dates accumulated over 25+ years and come in every format the
// operators could think of. parseDate accepts all known variants and maps
// everything unparseable to the zero time, it never fails: a blank or
// template date is a legitimate "no value", not an error.

var (
	// bare time of day without a date, e.g. "12:00" - cannot be anchored.
	bareTimePattern = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

	// trailing timezone markers as found in old logs: "12:30 GMT", "9:00UT", "10:00 TU".
	tzSuffixPattern = regexp.MustCompile(`(\d)\s*(TU|UTC|UT|GMT)$`)

	// whitespace around the date/time separator: "2020-01-01 T 10:00Z".
	tSepPattern = regexp.MustCompile(`\s+T\s*|\s*T\s+`)

	// month abbreviation forms: "15-Jan-2020" and "Jan-15-2020".
	dayMonYearPattern = regexp.MustCompile(`^(\d{1,2})[-\s]([A-Za-z]{3})[-\s](\d{4})(.*)$`)
	monDayYearPattern = regexp.MustCompile(`^([A-Za-z]{3})[-\s](\d{1,2})[-\s](\d{4})(.*)$`)
)

var monthPerAbbr = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dateLayouts are tried in order after normalization.
var dateLayouts = []string{
	"2006-1-2T15:04:05Z",
	"2006-1-2T15:04:05",
	"2006-1-2T15:04Z",
	"2006-1-2T15:04",
	"2006-1-2 15:04:05Z",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04Z",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"02.01.2006",
	"2006-1",
	"2006",
}

// parseDate parses a free-text sitelog date. Times are UTC, date-only
// values mean midnight. The zero time is returned for blank, template or
// unparseable input.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	// Template text like "CCYY-MM-DD", "(CCYY-MM-DDThh:mmZ)" or "0000-00-00".
	s = strings.Trim(s, "()")
	if strings.Contains(s, "CCYY") || strings.Contains(s, "YYYY") ||
		strings.HasPrefix(s, "0000-00-00") || strings.EqualFold(s, "NONE") {
		return time.Time{}
	}

	// Unfilled template time part: "1991-07-22Thh:mmZ".
	s = strings.TrimSuffix(s, "Thh:mmZ")
	s = strings.TrimSpace(s)

	if bareTimePattern.MatchString(s) {
		return time.Time{}
	}

	// "1999-04-DD": day left as template, take the first of month.
	s = strings.Replace(s, "DD", "01", 1)

	s = tzSuffixPattern.ReplaceAllString(s, "${1}Z")
	s = tSepPattern.ReplaceAllString(s, "T")

	if t, ok := parseMonthAbbrDate(s); ok {
		return t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	log.Printf("WARN: unparseable date: %q", s)
	return time.Time{}
}

// parseMonthAbbrDate handles "15-Jan-2020" and "Jan-15-2020", optionally
// followed by a time of day.
func parseMonthAbbrDate(s string) (time.Time, bool) {
	var monStr, dayStr, yearStr, rest string
	if res := dayMonYearPattern.FindStringSubmatch(s); res != nil {
		dayStr, monStr, yearStr, rest = res[1], res[2], res[3], res[4]
	} else if res := monDayYearPattern.FindStringSubmatch(s); res != nil {
		monStr, dayStr, yearStr, rest = res[1], res[2], res[3], res[4]
	} else {
		return time.Time{}, false
	}

	mon, ok := monthPerAbbr[strings.ToLower(monStr)]
	if !ok {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}

	normalized := fmt.Sprintf("%s-%02d-%02d", yearStr, mon, day)
	if rest = strings.TrimSpace(rest); rest != "" {
		normalized += "T" + strings.TrimSuffix(rest, "Z")
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEffectiveDates parses a range like "2018-02-01/CCYY-MM-DD".
func parseEffectiveDates(s string) EffectiveDates {
	dates := strings.SplitN(s, "/", 2)
	eff := EffectiveDates{From: parseDate(dates[0])}
	if len(dates) == 2 {
		eff.To = parseDate(dates[1])
	}
	return eff
}
