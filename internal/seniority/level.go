package seniority

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-matcher/internal/ai"
)

type Level string

const (
	LevelEntry      Level = "entry"
	LevelMid        Level = "mid"
	LevelSenior     Level = "senior"
	LevelManagement Level = "management"
)

// Rank orders levels from entry (1) to management (4).
func (l Level) Rank() int {
	switch l {
	case LevelEntry:
		return 1
	case LevelSenior:
		return 3
	case LevelManagement:
		return 4
	default:
		return 2
	}
}

func (l Level) Label() string {
	switch l {
	case LevelEntry:
		return "Entry/Graduate"
	case LevelSenior:
		return "Senior"
	case LevelManagement:
		return "Management/Architect"
	default:
		return "Mid-Level"
	}
}

var (
	managementKeys = []string{"director", "vp", "vice president", "head of", "chief", "cto", "cpo", "ceo",
		"principal architect", "solutions architect", "enterprise architect", "staff architect"}
	seniorKeys = []string{"senior", "sr.", "sr", "lead", "staff", "principal"}
	entryKeys  = []string{"junior", "jr.", "jr", "entry level", "entry-level", "associate", "graduate",
		"intern", "trainee", "new grad"}

	leadershipTerms = []string{"stakeholder management", "budgeting", "mentoring", "strategic planning",
		"resource allocation", "team leadership", "project delivery", "roadmap", "cross-functional",
		"process improvement", "hiring", "performance review", "organizational development",
		"change management", "executive reporting", "p&l", "profit and loss", "board reporting", "kpi", "okr"}
)

var jdRanges = []struct {
	re    *regexp.Regexp
	level Level
	years float64
}{
	{regexp.MustCompile(`8\s*[-–—]\s*10\s*years?`), LevelManagement, 8},
	{regexp.MustCompile(`5\s*[-–—]\s*8\s*years?`), LevelSenior, 5},
	{regexp.MustCompile(`3\s*[-–—]\s*6\s*years?`), LevelMid, 3},
	{regexp.MustCompile(`3\s*[-–—]\s*5\s*years?`), LevelMid, 3},
	{regexp.MustCompile(`2\s*[-–—]\s*5\s*years?`), LevelMid, 2},
	{regexp.MustCompile(`2\s*[-–—]\s*4\s*years?`), LevelMid, 2},
}

// Levels is the seniority comparison between candidate and role.
type Levels struct {
	Resume        Level   `json:"resume_level"`
	JD            Level   `json:"jd_level"`
	RequiredYears float64 `json:"required_years"`
}

// Gap is the candidate rank minus the role rank.
func (l Levels) Gap() int {
	return l.Resume.Rank() - l.JD.Rank()
}

// ParseLevel maps free-form level names to a Level.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return "", false
	case strings.Contains(s, "entry"), strings.Contains(s, "junior"), strings.Contains(s, "graduate"), strings.Contains(s, "intern"):
		return LevelEntry, true
	case strings.Contains(s, "manage"), strings.Contains(s, "architect"), strings.Contains(s, "director"),
		strings.Contains(s, "executive"), strings.Contains(s, "head"):
		return LevelManagement, true
	case strings.Contains(s, "senior"), strings.Contains(s, "lead"), strings.Contains(s, "staff"), strings.Contains(s, "principal"):
		return LevelSenior, true
	case strings.Contains(s, "mid"), strings.Contains(s, "intermediate"):
		return LevelMid, true
	}
	return "", false
}

// DetectResumeLevel uses experience years first and falls back to keywords.
func DetectResumeLevel(text string, years float64) Level {
	switch {
	case years >= 8:
		return LevelManagement
	case years >= 5:
		return LevelSenior
	case years > 2:
		return LevelMid
	case years > 0:
		return LevelEntry
	}

	lower := strings.ToLower(text)
	switch {
	case anyKeyword(lower, entryKeys):
		return LevelEntry
	case anyKeyword(lower, managementKeys):
		return LevelManagement
	case anyKeyword(lower, seniorKeys), leadershipCount(lower) >= 3:
		return LevelSenior
	}
	return LevelMid
}

// DetectJDLevel returns the level a job description asks for and the minimum
// required years, 0 when none is stated.
func DetectJDLevel(text string) (Level, float64) {
	lower := strings.ToLower(text)
	for _, r := range jdRanges {
		if r.re.MatchString(lower) {
			return r.level, r.years
		}
	}

	if years, ok := YearsFromText(lower); ok {
		switch {
		case years >= 8:
			return LevelManagement, years
		case years >= 5:
			return LevelSenior, years
		case years <= 2:
			return LevelEntry, years
		default:
			return LevelMid, years
		}
	}

	switch {
	case anyKeyword(lower, managementKeys):
		return LevelManagement, 0
	case anyKeyword(lower, seniorKeys):
		return LevelSenior, 0
	case anyKeyword(lower, entryKeys):
		return LevelEntry, 0
	}
	return LevelMid, 0
}

// DetectLevels combines extraction hints with local detection. The extracted
// seniority_level and required_years describe the job description and take
// precedence over the ones detected from its text.
func DetectLevels(profile *ai.Profile, resumeText, jdText string, years float64) Levels {
	jdLevel, required := DetectJDLevel(jdText)
	levels := Levels{
		Resume:        DetectResumeLevel(resumeText, years),
		JD:            jdLevel,
		RequiredYears: required,
	}

	if profile == nil {
		return levels
	}
	if lvl, ok := ParseLevel(profile.SeniorityLevel); ok {
		levels.JD = lvl
	}
	if profile.RequiredYears != nil {
		levels.RequiredYears = *profile.RequiredYears
	}
	return levels
}

func anyKeyword(lower string, keys []string) bool {
	for _, k := range keys {
		if hasWord(lower, k) {
			return true
		}
	}
	return false
}

// hasWord reports whether key occurs as a whole word.
func hasWord(lower, key string) bool {
	offset := 0
	for {
		idx := strings.Index(lower[offset:], key)
		if idx < 0 {
			return false
		}
		start := offset + idx
		if start == 0 || !isLetterOrDigit(lower[start-1]) {
			end := start + len(key)
			if end == len(lower) || !isLetterOrDigit(lower[end]) {
				return true
			}
		}
		offset = start + 1
	}
}

func isLetterOrDigit(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func leadershipCount(lower string) int {
	n := 0
	for _, t := range leadershipTerms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}
