package seniority

import (
	"regexp"
	"strconv"
)

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)over\s+(\d+)\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\s*years?\s+experience`),
	regexp.MustCompile(`(?i)minimum\s+(?:of\s+)?(\d+)\s*years?`),
	regexp.MustCompile(`(?i)at\s+least\s+(\d+)\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:-|–|—|to)\s*\d+\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\+\s*years?`),
}

// rangeTail matches the lower bound when a pattern caught the upper end of "3-5 years".
var rangeTail = regexp.MustCompile(`(\d+)\s*(?:-|–|—|to)\s*$`)

// YearsFromText returns the first explicit years statement in text. For
// ranges the minimum is taken.
func YearsFromText(text string) (float64, bool) {
	for _, re := range yearPatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		value := text[loc[2]:loc[3]]
		if m := rangeTail.FindStringSubmatch(text[:loc[2]]); m != nil {
			value = m[1]
		}
		years, err := strconv.Atoi(value)
		if err != nil || years <= 0 {
			continue
		}
		return float64(years), true
	}
	return 0, false
}
