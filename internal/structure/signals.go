package structure

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-matcher/internal/document"
)

const usStates = `AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|` +
	`MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY|DC`

var (
	emailRe    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe    = regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}|\+\d{1,3}[\s.-]?\(?\d{2,4}\)?(?:[\s.-]?\d{2,4}){2,4}`)
	stateLocRe = regexp.MustCompile(`[A-Z][a-zA-Z ]{2,20},\s?(?:` + usStates + `)\b`)
	cityRe     = regexp.MustCompile(`(?i)\b(?:New York|Los Angeles|San Francisco|Chicago|Houston|Seattle|Austin|Boston|` +
		`Jersey City|New Jersey|Brooklyn|Manhattan|Charlotte|Atlanta|Dallas|Miami|Phoenix|` +
		`Denver|Portland|Philadelphia|Minneapolis|Nashville|San Diego|Washington|London|Berlin|` +
		`Toronto|Amsterdam|Remote)\b`)
	linkedInRe = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|(?:^|[^\w])in/)[\w-]{3,}`)

	dateRe = regexp.MustCompile(`(?i)\d{1,2}/\d{2,4}|\b(?:19|20)\d{2}\b|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s*\d{4}`)

	metricRe = regexp.MustCompile(`(?i)\d+\s*%|\$\s*\d+[kmb]?|\d+\s*x\b|\d+\s*times\b|\d+\+?\s*(?:million|billion|thousand|users|customers|clients|team|engineers|people|reports)\b`)

	degreeRequiredRe = regexp.MustCompile(`(?i)(?:required?|must\s+have|minimum).{0,40}(?:bachelor|master|degree|phd|mba)|` +
		`(?:bachelor|master|degree|phd|mba).{0,40}\b(?:required|mandatory|must)\b`)
	degreePreferredRe = regexp.MustCompile(`(?i)(?:preferred?|nice\s+to\s+have|desired?).{0,40}(?:bachelor|master|degree|phd|mba)|` +
		`(?:bachelor|master|degree|phd|mba).{0,40}\b(?:preferred|desired|a\s+plus)\b`)
)

const headerLines = 5

var degreeKeywords = []string{
	"bachelor", "bachelors", "b.s.", "b.a.", "bs", "ba", "bsc", "master", "masters", "m.s.", "m.a.", "msc",
	"mba", "phd", "ph.d", "doctorate", "associate degree", "degree", "university", "college", "graduated",
}

// Signals are the structural facts about a résumé that the scorer and the
// diagnostics consume.
type Signals struct {
	HasEmail    bool `json:"has_email"`
	HasPhone    bool `json:"has_phone"`
	HasLocation bool `json:"has_location"`
	HasLinkedIn bool `json:"has_linkedin"`

	Sections Sections `json:"sections"`

	DateCount int `json:"date_count"`
	Metrics   int `json:"metrics"`

	HasDegree       bool `json:"has_degree"`
	DegreeRequired  bool `json:"degree_required"`
	DegreePreferred bool `json:"degree_preferred"`
}

func (s Signals) HasDates() bool {
	return s.DateCount > 0
}

// Analyze collects résumé signals. The JD is only used for the education gate.
func Analyze(resumeText, jdText string) Signals {
	lines := strings.Split(resumeText, "\n")
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}
	header := strings.Join(lines, "\n")

	s := Signals{
		HasEmail:    emailRe.MatchString(resumeText),
		HasPhone:    phoneRe.MatchString(resumeText),
		HasLocation: stateLocRe.MatchString(resumeText) || cityRe.MatchString(header),
		HasLinkedIn: linkedInRe.MatchString(resumeText),
		Sections:    DetectSections(resumeText),
		DateCount:   len(dateRe.FindAllString(resumeText, -1)),
		Metrics:     len(metricRe.FindAllString(resumeText, -1)),
	}

	idx := document.NewIndex(resumeText)
	for _, kw := range degreeKeywords {
		if idx.Count(kw) > 0 {
			s.HasDegree = true
			break
		}
	}

	s.DegreeRequired = degreeRequiredRe.MatchString(jdText)
	s.DegreePreferred = degreePreferredRe.MatchString(jdText)

	return s
}

// RequiresDegree interprets an extracted education requirement such as
// "Bachelor's degree" or "none".
func RequiresDegree(requirement string) bool {
	r := strings.ToLower(strings.TrimSpace(requirement))
	switch r {
	case "", "none", "n/a", "not required", "no":
		return false
	}
	for _, kw := range []string{"bachelor", "master", "phd", "doctor", "degree", "mba", "bs", "ms", "bsc", "msc"} {
		if document.Contains(r, kw) {
			return true
		}
	}
	return false
}
