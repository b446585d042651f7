package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/spigell/resume-matcher/internal/document"
)

const maxPatternSkills = 20

var requirementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)experience (?:with|in)\s+([^,.;\n]{3,40})`),
	regexp.MustCompile(`(?i)knowledge of\s+([^,.;\n]{3,40})`),
	regexp.MustCompile(`(?i)familiarity with\s+([^,.;\n]{3,40})`),
	regexp.MustCompile(`(?i)expertise in\s+([^,.;\n]{3,40})`),
}

// Inventory holds the local, extraction independent view of both documents.
type Inventory struct {
	resumeText string
	jdText     string
	resume     document.Index
	jd         document.Index
	jdHead     document.Index

	// LexiconSkills are JD skills found through the local lexicon, in order of
	// first appearance. Used when extraction provides no JD skill list.
	LexiconSkills []string
	SoftSkills    []string
	// WordDensity ranks JD content words and is used when there are no skills.
	WordDensity Density
}

// NewInventory scans both documents. It performs no I/O and is safe to run in
// parallel with extraction.
func NewInventory(resumeText, jdText string, densityLimit int) *Inventory {
	lines := document.Lines(jdText)
	if len(lines) > 3 {
		lines = lines[:3]
	}

	inv := &Inventory{
		resumeText: resumeText,
		jdText:     jdText,
		resume:     document.NewIndex(resumeText),
		jd:         document.NewIndex(jdText),
		jdHead:     document.NewIndex(strings.Join(lines, "\n")),
	}

	inv.LexiconSkills = inv.lexiconSkills()
	inv.SoftSkills = inv.softSkills()
	inv.WordDensity = wordDensity(resumeText, jdText, densityLimit)

	return inv
}

func (inv *Inventory) lexiconSkills() []string {
	type found struct {
		name string
		pos  int
	}

	var hits []found
	for _, e := range hardSkills {
		pos := -1
		for _, form := range append([]string{e.name}, e.aliases...) {
			if p := inv.jd.First(form); p >= 0 && (pos < 0 || p < pos) {
				pos = p
			}
		}
		if pos >= 0 {
			hits = append(hits, found{name: e.name, pos: pos})
		}
	}

	if len(hits) == 0 {
		return patternSkills(inv.jdText)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

// patternSkills picks requirement phrases such as "experience with X" when no
// lexicon skill is present.
func patternSkills(jdText string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, re := range requirementPatterns {
		for _, m := range re.FindAllStringSubmatch(jdText, -1) {
			token := strings.ToLower(strings.Trim(strings.TrimSpace(m[1]), ".,;:"))
			if len(token) < 3 || len(token) > 50 {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
			if len(out) == maxPatternSkills {
				return out
			}
		}
	}
	return out
}

func (inv *Inventory) softSkills() []string {
	var out []string
	for _, s := range softSkills {
		if inv.resume.Count(s) > 0 {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func wordDensity(resumeText, jdText string, limit int) Density {
	density := Density{Explanation: densityExplanation}
	if limit <= 0 {
		return density
	}

	counts := map[string]int{}
	var order []string
	for _, w := range document.Words(jdText) {
		if len([]rune(w)) <= 3 || !isAlpha(w) {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}

	resumeCounts := map[string]int{}
	for _, w := range document.Words(resumeText) {
		resumeCounts[w]++
	}

	for _, w := range order {
		density.Labels = append(density.Labels, w)
		density.JDTargetCounts = append(density.JDTargetCounts, counts[w])
		density.ResumeCounts = append(density.ResumeCounts, resumeCounts[w])
	}
	return density
}

func isAlpha(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
