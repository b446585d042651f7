package structure

import "strings"

const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// maxHeadingLen is the longest line still treated as a section heading.
const maxHeadingLen = 50

var standardHeadings = map[string][]string{
	SectionSummary:    {"summary", "professional summary", "profile", "objective", "professional profile", "career objective", "about me"},
	SectionExperience: {"experience", "work experience", "professional experience", "employment history", "work history", "career history", "employment"},
	SectionEducation:  {"education", "academic background", "academic history", "qualifications", "degrees"},
	SectionSkills:     {"skills", "technical skills", "core competencies", "key skills", "areas of expertise", "competencies"},
}

var sectionOrder = []string{SectionSummary, SectionExperience, SectionEducation, SectionSkills}

var nonStandardHeadings = []string{
	"career highlights", "what i bring", "why hire me", "my journey", "career story",
	"professional journey", "achievements overview", "value proposition",
}

var boundaryHeadings = []string{"summary", "experience", "education", "skills", "certifications", "projects", "awards", "publications"}

type Sections struct {
	Present     map[string]bool `json:"present"`
	NonStandard []string        `json:"non_standard,omitempty"`
}

// Core counts the experience, education and skills headings.
func (s Sections) Core() int {
	n := 0
	for _, name := range []string{SectionExperience, SectionEducation, SectionSkills} {
		if s.Present[name] {
			n++
		}
	}
	return n
}

// Missing lists standard sections without a heading, in résumé order.
func (s Sections) Missing() []string {
	var out []string
	for _, name := range sectionOrder {
		if !s.Present[name] {
			out = append(out, name)
		}
	}
	return out
}

func DetectSections(resumeText string) Sections {
	s := Sections{Present: make(map[string]bool, len(standardHeadings))}
	for _, name := range sectionOrder {
		s.Present[name] = false
	}

	for _, line := range strings.Split(resumeText, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "" || len(lower) >= maxHeadingLen {
			continue
		}
		for name, variants := range standardHeadings {
			if containsAny(lower, variants) {
				s.Present[name] = true
			}
		}
		for _, h := range nonStandardHeadings {
			if strings.Contains(lower, h) {
				s.NonStandard = append(s.NonStandard, h)
			}
		}
	}
	return s
}

// sectionText returns the lines of the first section whose heading contains
// one of keywords, up to the next heading.
func sectionText(lines []string, keywords []string) string {
	start := -1
	for i, line := range lines {
		if len(strings.TrimSpace(line)) < maxHeadingLen && containsAny(line, keywords) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if len(trimmed) < maxHeadingLen && containsAny(trimmed, boundaryHeadings) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
