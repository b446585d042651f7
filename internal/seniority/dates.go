package seniority

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrNoParseableDates = errors.New("no parseable dates")

const (
	minSpanMonths = 2
	maxSpanMonths = 600
)

// Interval is one employment period. Current intervals end at the evaluation time.
type Interval struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Current bool      `json:"current,omitempty"`
}

type dateKind int

const (
	kindDayMonthYear dateKind = iota
	kindSeason
	kindMonthYear
	kindEuropean
	kindMonthSlashYear
	kindYear
)

const (
	sep     = `\s*(?:-|–|—|\bto\b)\s*`
	present = `present|current|now`
)

type datePattern struct {
	kind dateKind
	re   *regexp.Regexp
}

func rangePattern(kind dateKind, token string) datePattern {
	return datePattern{
		kind: kind,
		re:   regexp.MustCompile(`(?i)\b(` + token + `)` + sep + `(` + present + `|` + token + `)\b`),
	}
}

// Ordered from most to least specific. Matched spans are masked so a range is
// never counted twice by a looser pattern.
var datePatterns = []datePattern{
	rangePattern(kindDayMonthYear, `\d{1,2}\s+[a-z]+\.?\s+\d{4}`),
	rangePattern(kindSeason, `(?:spring|summer|fall|autumn|winter|q[1-4])\s+\d{4}`),
	rangePattern(kindMonthYear, `[a-z]+\.?\s+\d{4}`),
	rangePattern(kindEuropean, `\d{1,2}/\d{1,2}/\d{4}`),
	rangePattern(kindMonthSlashYear, `\d{1,2}/\d{4}`),
	rangePattern(kindYear, `\d{4}`),
}

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var seasonMonths = map[string]time.Month{
	"spring": time.March,
	"summer": time.June,
	"fall":   time.September,
	"autumn": time.September,
	"winter": time.December,
	"q1":     time.January,
	"q2":     time.April,
	"q3":     time.July,
	"q4":     time.October,
}

var (
	experienceHeadings = []string{"professional experience", "work experience", "experience", "employment history", "work history", "career history"}
	sectionHeadings    = []string{"education", "certifications", "projects", "skills", "awards", "publications"}
)

// ParsePeriods finds employment date ranges in the experience section of a
// résumé, falling back to the whole text when no section is found.
func ParsePeriods(resumeText string, now time.Time) ([]Interval, error) {
	text := []byte(experienceSection(resumeText))

	var out []Interval
	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllSubmatchIndex(text, -1) {
			startRaw := string(text[loc[2]:loc[3]])
			endRaw := string(text[loc[4]:loc[5]])

			interval, ok := parseRange(p.kind, startRaw, endRaw, now)
			if !ok {
				continue
			}
			out = append(out, interval)
			for i := loc[0]; i < loc[1]; i++ {
				text[i] = ' '
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoParseableDates
	}
	return out, nil
}

func experienceSection(text string) string {
	var b strings.Builder
	in := false
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if isHeading(lower, experienceHeadings) {
			in = true
			continue
		}
		if in && isHeading(lower, sectionHeadings) {
			break
		}
		if in {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return text
	}
	return b.String()
}

// isHeading accepts short lines that start with one of the headings, so a
// summary sentence mentioning "experience" does not open the section.
func isHeading(lower string, headings []string) bool {
	lower = strings.TrimRight(lower, ":")
	if len(strings.Fields(lower)) > 4 {
		return false
	}
	for _, h := range headings {
		if strings.HasPrefix(lower, h) {
			return true
		}
	}
	return false
}

func parseRange(kind dateKind, startRaw, endRaw string, now time.Time) (Interval, bool) {
	start, ok := parseDate(kind, startRaw)
	if !ok {
		return Interval{}, false
	}

	interval := Interval{Start: start}
	switch strings.ToLower(strings.TrimSpace(endRaw)) {
	case "present", "current", "now":
		interval.End = monthStart(now)
		interval.Current = true
	default:
		end, ok := parseDate(kind, endRaw)
		if !ok {
			return Interval{}, false
		}
		interval.End = end
	}

	span := monthsBetween(interval.Start, interval.End)
	if span < minSpanMonths || span > maxSpanMonths {
		return Interval{}, false
	}
	return interval, true
}

func parseDate(kind dateKind, raw string) (time.Time, bool) {
	fields := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == ' ' || r == '/' || r == '.' || r == '\t'
	})

	switch kind {
	case kindDayMonthYear:
		if len(fields) != 3 {
			return time.Time{}, false
		}
		month, ok := months[fields[1]]
		if !ok {
			return time.Time{}, false
		}
		return date(fields[2], month)
	case kindSeason:
		if len(fields) != 2 {
			return time.Time{}, false
		}
		return date(fields[1], seasonMonths[fields[0]])
	case kindMonthYear:
		if len(fields) != 2 {
			return time.Time{}, false
		}
		month, ok := months[fields[0]]
		if !ok {
			return time.Time{}, false
		}
		return date(fields[1], month)
	case kindEuropean:
		if len(fields) != 3 {
			return time.Time{}, false
		}
		m, err := strconv.Atoi(fields[1])
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, false
		}
		return date(fields[2], time.Month(m))
	case kindMonthSlashYear:
		if len(fields) != 2 {
			return time.Time{}, false
		}
		m, err := strconv.Atoi(fields[0])
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, false
		}
		return date(fields[1], time.Month(m))
	case kindYear:
		if len(fields) != 1 {
			return time.Time{}, false
		}
		return date(fields[0], time.January)
	}
	return time.Time{}, false
}

func date(yearRaw string, month time.Month) (time.Time, bool) {
	year, err := strconv.Atoi(yearRaw)
	if err != nil || year < 1950 || year > 2100 || month == 0 {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func monthsBetween(start, end time.Time) int {
	return monthIndex(end) - monthIndex(start)
}
