package structure

import (
	"strings"

	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/skills"
)

// Placement counts matched skills per résumé section.
type Placement struct {
	Summary    int `json:"summary_hits"`
	Experience int `json:"experience_hits"`
	Skills     int `json:"skills_hits"`
}

// PlacementOf reports in how many of the summary, experience and skills
// sections each matched skill appears.
func PlacementOf(resumeText string, matched []string) Placement {
	if len(matched) == 0 {
		return Placement{}
	}

	lines := strings.Split(strings.ToLower(resumeText), "\n")
	summary := document.NewIndex(sectionText(lines, []string{"summary", "profile", "objective"}))
	experience := document.NewIndex(sectionText(lines, []string{"experience", "work history", "employment"}))
	skillsSection := document.NewIndex(sectionText(lines, []string{"skills", "technical skills", "competencies"}))

	var p Placement
	for _, name := range matched {
		forms := skills.Forms(name)
		if anyForm(summary, forms) {
			p.Summary++
		}
		if anyForm(experience, forms) {
			p.Experience++
		}
		if anyForm(skillsSection, forms) {
			p.Skills++
		}
	}
	return p
}

func anyForm(idx document.Index, forms []string) bool {
	for _, f := range forms {
		if idx.Count(f) > 0 {
			return true
		}
	}
	return false
}
