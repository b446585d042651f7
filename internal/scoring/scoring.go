package scoring

import (
	"fmt"

	"github.com/spigell/resume-matcher/internal/seniority"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/structure"
	"github.com/spigell/resume-matcher/internal/title"
	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	KeywordOverlap   = "keyword_overlap"
	KeywordPlacement = "keyword_placement"
	Experience       = "experience"
	Education        = "education"
	Formatting       = "formatting"
	Contact          = "contact"
	Structure        = "structure"
	Impact           = "impact"
	Seniority        = "seniority"
)

// Categories lists the breakdown keys in report order.
var Categories = []string{
	KeywordOverlap, KeywordPlacement, Experience, Education,
	Formatting, Contact, Structure, Impact, Seniority,
}

var maxRaw = map[string]float64{
	KeywordOverlap:   40,
	KeywordPlacement: 25,
	Experience:       15,
	Education:        10,
	Formatting:       10,
	Contact:          5,
	Structure:        5,
	Impact:           5,
	Seniority:        5,
}

// Weights are the share of the 100 point total each category contributes.
type Weights struct {
	KeywordOverlap   float64
	KeywordPlacement float64
	Experience       float64
	Education        float64
	Formatting       float64
	Contact          float64
	Structure        float64
	Impact           float64
	Seniority        float64
}

func DefaultWeights() Weights {
	return Weights{
		KeywordOverlap:   30,
		KeywordPlacement: 20,
		Experience:       15,
		Education:        10,
		Formatting:       10,
		Contact:          5,
		Structure:        5,
		Impact:           5,
		Seniority:        5,
	}
}

func (w Weights) of(category string) float64 {
	switch category {
	case KeywordOverlap:
		return w.KeywordOverlap
	case KeywordPlacement:
		return w.KeywordPlacement
	case Experience:
		return w.Experience
	case Education:
		return w.Education
	case Formatting:
		return w.Formatting
	case Contact:
		return w.Contact
	case Structure:
		return w.Structure
	case Impact:
		return w.Impact
	case Seniority:
		return w.Seniority
	}
	return 0
}

type Category struct {
	Raw      float64 `json:"raw"`
	Max      float64 `json:"max"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Note     string  `json:"note,omitempty"`
}

// Missing is the number of weighted points the category did not earn.
func (c Category) Missing() float64 {
	return utils.Round1(c.Weight - c.Weighted)
}

type Breakdown map[string]Category

// Input is everything the scorer reads. A nil Skills result scores as if the
// JD had no skills.
type Input struct {
	Skills            *skills.Result
	Placement         structure.Placement
	Signals           structure.Signals
	Assessment        seniority.Assessment
	Levels            seniority.Levels
	Title             title.Result
	EducationRequired string
	Weights           Weights
}

// DegreeRequired reports whether either the extraction or the JD text makes a
// degree mandatory.
func (in Input) DegreeRequired() bool {
	return in.Signals.DegreeRequired || structure.RequiresDegree(in.EducationRequired)
}

// MatchRate is the share of JD skills found in the résumé, in percent.
func (in Input) MatchRate() float64 {
	if in.Skills == nil {
		return 0
	}
	return utils.Round1(utils.Percent(in.Skills.Present(), len(in.Skills.Skills)))
}

// Score computes the per-category breakdown and the total in [0, 100]. A zero
// Weights value means DefaultWeights.
func Score(in Input) (Breakdown, float64) {
	w := in.Weights
	if w == (Weights{}) {
		w = DefaultWeights()
	}

	raw := map[string]rule{
		KeywordOverlap:   keywordOverlap(in),
		KeywordPlacement: keywordPlacement(in.Placement),
		Experience:       experience(in.Assessment, in.Levels),
		Education:        education(in),
		Formatting:       formatting(in.Signals),
		Contact:          contact(in.Signals),
		Structure:        structureScore(in.Signals),
		Impact:           impact(in.Signals.Metrics),
		Seniority:        seniorityScore(in.Levels, in.Title, in.Assessment),
	}

	breakdown := make(Breakdown, len(Categories))
	total := 0.0
	for _, name := range Categories {
		r := raw[name]
		ceiling := maxRaw[name]
		value := utils.Round1(utils.Clamp(r.value, 0, ceiling))
		weight := w.of(name)
		weighted := utils.Round1(value / ceiling * weight)

		breakdown[name] = Category{Raw: value, Max: ceiling, Weight: weight, Weighted: weighted, Note: r.note}
		total += weighted
	}

	return breakdown, utils.Round1(utils.Clamp(total, 0, 100))
}

type rule struct {
	value float64
	note  string
}

func keywordOverlap(in Input) rule {
	if in.Skills == nil || len(in.Skills.Skills) == 0 {
		return rule{0, "no JD skills identified"}
	}

	rate := in.MatchRate()
	note := fmt.Sprintf("%d of %d JD skills found (%.0f%%)", in.Skills.Present(), len(in.Skills.Skills), rate)
	switch {
	case rate >= 80:
		return rule{40, note}
	case rate >= 60:
		return rule{30, note}
	case rate >= 40:
		return rule{20, note}
	default:
		return rule{10, note}
	}
}

func keywordPlacement(p structure.Placement) rule {
	points := min(5*p.Summary, 15) + min(3*p.Experience, 12) + min(p.Skills, 8)
	return rule{
		value: float64(points) * 25 / 35,
		note:  fmt.Sprintf("summary %d, experience %d, skills %d", p.Summary, p.Experience, p.Skills),
	}
}

func experience(a seniority.Assessment, l seniority.Levels) rule {
	required := l.RequiredYears
	years := a.Years()
	note := fmt.Sprintf("%.1f years against %.1f required", years, required)

	switch {
	case required <= 0:
		return rule{15, "no minimum experience stated"}
	case years >= required:
		return rule{15, note}
	case years >= required-1:
		return rule{10, note}
	case years >= required-2:
		return rule{5, note}
	default:
		return rule{0, note}
	}
}

func education(in Input) rule {
	switch {
	case in.DegreeRequired() && !in.Signals.HasDegree:
		return rule{0, "degree required but not detected"}
	case in.DegreeRequired():
		return rule{10, "degree requirement met"}
	default:
		return rule{10, "no degree requirement"}
	}
}

func formatting(s structure.Signals) rule {
	points := 0.0
	switch s.Sections.Core() {
	case 3:
		points += 5
	case 2:
		points += 3
	}

	switch {
	case s.HasEmail && s.HasPhone:
		points += 3
	case s.HasEmail || s.HasPhone:
		points++
	}

	switch {
	case s.Metrics >= 5:
		points += 2
	case s.Metrics >= 2:
		points++
	}

	return rule{points, fmt.Sprintf("%d of 3 core sections, %d metrics", s.Sections.Core(), s.Metrics)}
}

func contact(s structure.Signals) rule {
	points := 0.0
	if s.HasEmail {
		points += 2
	}
	if s.HasPhone {
		points += 2
	}
	if s.HasLocation {
		points++
	}
	if s.HasLinkedIn {
		points += 0.5
	}
	return rule{value: points}
}

func structureScore(s structure.Signals) rule {
	points := 1.0
	switch s.Sections.Core() {
	case 3:
		points = 3
	case 2:
		points = 2
	}
	if s.HasDates() {
		points += 2
	}
	return rule{value: points}
}

func impact(metrics int) rule {
	note := fmt.Sprintf("%d quantified results", metrics)
	switch {
	case metrics >= 8:
		return rule{5, note}
	case metrics >= 5:
		return rule{4, note}
	case metrics >= 3:
		return rule{2.5, note}
	case metrics >= 1:
		return rule{1, note}
	default:
		return rule{0, note}
	}
}

func seniorityScore(l seniority.Levels, t title.Result, a seniority.Assessment) rule {
	var points float64
	switch l.Gap() {
	case 0:
		points = 5
	case 1:
		points = 4
	case -1:
		points = 2
	default:
		points = 1
	}

	switch t.Alignment {
	case title.AlignmentPartial:
		points -= 0.5
	case title.AlignmentUnrelated:
		points--
	}
	points = max(points, 0)

	if a.Mismatch {
		points = max(points-1, 0)
	}

	return rule{points, fmt.Sprintf("%s candidate for a %s role, title %s", l.Resume.Label(), l.JD.Label(), t.Alignment)}
}

type Tier string

const (
	TierExcellent  Tier = "excellent"
	TierGood       Tier = "good"
	TierFair       Tier = "fair"
	TierBorderline Tier = "borderline"
	TierPoor       Tier = "poor"
)

func TierOf(total float64) Tier {
	switch {
	case total >= 85:
		return TierExcellent
	case total >= 70:
		return TierGood
	case total >= 55:
		return TierFair
	case total >= 40:
		return TierBorderline
	default:
		return TierPoor
	}
}
