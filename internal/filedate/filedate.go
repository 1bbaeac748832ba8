package filedate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patterns are tried in order; the first one whose match parses to a real
// calendar date wins. Later patterns never override an earlier one.
var patterns = []struct {
	re    *regexp.Regexp
	parse func(m []string) (time.Time, bool)
}{
	// 2023-10-27 or 2023_10_27
	{regexp.MustCompile(`(\d{4})[-_](\d{1,2})[-_](\d{1,2})`), parseYMD},
	// 2023.10.27
	{regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`), parseYMD},
	// 10-27-2023 or 10_27_2023
	{regexp.MustCompile(`(\d{1,2})[-_](\d{1,2})[-_](\d{4})`), parseMDY},
	// 10.27.2023
	{regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`), parseMDY},
	// 20231027
	{regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`), parseYMD},
	// October 27 2023, October-27-2023, Oct 27, 2023
	{regexp.MustCompile(`(?i)([a-zA-Z]+)\s*[-_]?\s*(\d{1,2})\s*[-_,]?\s*(\d{4})`), parseWritten},
	// 27 October 2023
	{regexp.MustCompile(`(?i)(\d{1,2})\s+([a-zA-Z]+)\s+(\d{4})`), parseWrittenReversed},
}

// Detect extracts a meeting date from a filename such as
// "2023-10-27_Meeting.mp3" or "October 27 2023 meeting.m4a" and returns it in
// YYYY-MM-DD form. The second return value is false when no pattern yields a
// valid calendar date.
func Detect(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if d, ok := p.parse(m); ok {
			return d.Format("2006-01-02"), true
		}
	}
	return "", false
}

func parseYMD(m []string) (time.Time, bool) {
	return makeDate(m[1], m[2], m[3])
}

func parseMDY(m []string) (time.Time, bool) {
	return makeDate(m[3], m[1], m[2])
}

func parseWritten(m []string) (time.Time, bool) {
	mo, ok := monthNumber(m[1])
	if !ok {
		return time.Time{}, false
	}
	return makeDate(m[3], strconv.Itoa(int(mo)), m[2])
}

func parseWrittenReversed(m []string) (time.Time, bool) {
	mo, ok := monthNumber(m[2])
	if !ok {
		return time.Time{}, false
	}
	return makeDate(m[3], strconv.Itoa(int(mo)), m[1])
}

func monthNumber(name string) (time.Month, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "january", "jan":
		return time.January, true
	case "february", "feb":
		return time.February, true
	case "march", "mar":
		return time.March, true
	case "april", "apr":
		return time.April, true
	case "may":
		return time.May, true
	case "june", "jun":
		return time.June, true
	case "july", "jul":
		return time.July, true
	case "august", "aug":
		return time.August, true
	case "september", "sept", "sep":
		return time.September, true
	case "october", "oct":
		return time.October, true
	case "november", "nov":
		return time.November, true
	case "december", "dec":
		return time.December, true
	}
	return 0, false
}

// makeDate validates that the components form a real calendar date; time.Date
// normalizes overflow (e.g. Feb 30 becomes Mar 2), so the components are
// compared back after construction.
func makeDate(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
