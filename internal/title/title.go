package title

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/document"
)

type Source string

const (
	SourceAI    Source = "ai"
	SourceRegex Source = "regex"
)

type Alignment string

const (
	AlignmentExact     Alignment = "exact"
	AlignmentPartial   Alignment = "partial"
	AlignmentUnrelated Alignment = "unrelated"
	AlignmentUnknown   Alignment = "unknown"
)

type Result struct {
	Source    Source    `json:"source"`
	Title     string    `json:"title"`
	Alignment Alignment `json:"alignment_status"`
}

const (
	headLines     = 8
	maxTitleWords = 8
	standaloneLen = 500
)

var (
	labelOnlyRe  = regexp.MustCompile(`(?i)^(job\s*description|job\s*title|role|position|title|duties|about\s*the\s*role|about\s*us|overview|description|duties\s*&\s*responsibilities|responsibilities)\s*:?\s*$`)
	labelRe      = regexp.MustCompile(`(?i)^(job\s*title|role|position|title)\s*:\s*`)
	bodyRe       = regexp.MustCompile(`(?i)\b(?:of|for|as|hiring|seeking)\s+an?\s+([a-z][a-z /-]{0,60}?\b(?:engineer|developer|manager|analyst|architect|designer|specialist|lead|director|scientist|consultant))\b`)
	standaloneRe = regexp.MustCompile(`(?i)\b(?:(?:senior|junior|lead|staff|principal|qa|embedded|software|systems?|hardware|firmware|automation|backend|frontend|data|devops)\s+){0,3}(?:engineer|developer|manager|analyst|architect|designer|scientist)\b`)

	titleSignals = []string{
		"engineer", "developer", "manager", "analyst", "designer", "architect",
		"director", "lead", "specialist", "consultant", "coordinator", "officer",
		"associate", "scientist", "administrator", "executive", "head", "vp",
		"product", "software", "data", "senior", "junior", "staff", "principal",
	}
)

// extractFromJD is swapped in tests to observe whether the regex path runs.
var extractFromJD = Extract

// Check resolves the target title, preferring the extracted one, and reports
// how well the résumé reflects it.
func Check(outcome ai.Outcome, resumeText, jdText string) Result {
	if t, ok := outcome.Title(); ok {
		return Result{Source: SourceAI, Title: t, Alignment: Align(t, resumeText)}
	}

	t := extractFromJD(jdText)
	if t == "" {
		return Result{Source: SourceRegex, Alignment: AlignmentUnknown}
	}
	return Result{Source: SourceRegex, Title: t, Alignment: Align(t, resumeText)}
}

// Extract finds the job title in a job description using three passes: the
// heading lines, a "hiring a <title>" phrase and a standalone role noun.
func Extract(jdText string) string {
	lines := document.Lines(jdText)
	if len(lines) > headLines {
		lines = lines[:headLines]
	}
	for _, line := range lines {
		if labelOnlyRe.MatchString(line) {
			continue
		}
		stripped := strings.TrimSpace(labelRe.ReplaceAllString(line, ""))
		if stripped == "" || len(strings.Fields(stripped)) > maxTitleWords {
			continue
		}
		for _, signal := range titleSignals {
			if document.Contains(stripped, signal) {
				return stripped
			}
		}
	}

	if m := bodyRe.FindStringSubmatch(jdText); m != nil {
		return strings.Join(strings.Fields(m[1]), " ")
	}

	head := jdText
	if r := []rune(head); len(r) > standaloneLen {
		head = string(r[:standaloneLen])
	}
	if m := standaloneRe.FindString(head); m != "" {
		return strings.Join(strings.Fields(m), " ")
	}
	return ""
}

// Align compares a title with the résumé. Exact means the whole phrase is
// present; partial means all but at most one significant word is present.
func Align(title, resumeText string) Alignment {
	titleCore := core(title)
	if titleCore == "" {
		return AlignmentUnknown
	}

	resumeCore := core(resumeText)
	if document.Contains(resumeCore, titleCore) {
		return AlignmentExact
	}

	var significant []string
	for _, w := range strings.Fields(titleCore) {
		if len([]rune(w)) > 2 {
			significant = append(significant, w)
		}
	}
	if len(significant) == 0 {
		return AlignmentUnrelated
	}

	resumeWords := map[string]struct{}{}
	for _, w := range strings.Fields(resumeCore) {
		resumeWords[w] = struct{}{}
	}
	overlap := 0
	for _, w := range significant {
		if _, ok := resumeWords[w]; ok {
			overlap++
		}
	}

	if overlap >= max(1, len(significant)-1) {
		return AlignmentPartial
	}
	return AlignmentUnrelated
}

// core lowercases text and replaces punctuation with spaces.
func core(s string) string {
	return strings.Join(strings.Fields(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)), " ")
}
