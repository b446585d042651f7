package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/seniority"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/structure"
	"github.com/spigell/resume-matcher/internal/title"
)

func ptr(v float64) *float64 { return &v }

func skillResult(total, present int) *skills.Result {
	r := &skills.Result{}
	for i := 0; i < total; i++ {
		r.Skills = append(r.Skills, skills.Skill{Name: string(rune('a' + i))})
		if i < present {
			r.Matched = append(r.Matched, string(rune('a'+i)))
		} else {
			r.Missing = append(r.Missing, string(rune('a'+i)))
		}
	}
	return r
}

func fullSections() structure.Sections {
	return structure.Sections{Present: map[string]bool{
		structure.SectionSummary:    true,
		structure.SectionExperience: true,
		structure.SectionEducation:  true,
		structure.SectionSkills:     true,
	}}
}

func strongInput() Input {
	return Input{
		Skills:    skillResult(10, 9),
		Placement: structure.Placement{Summary: 3, Experience: 4, Skills: 8},
		Signals: structure.Signals{
			HasEmail: true, HasPhone: true, HasLocation: true, HasLinkedIn: true,
			Sections:  fullSections(),
			DateCount: 6,
			Metrics:   8,
			HasDegree: true,
		},
		Assessment: seniority.Assessment{ClaimedYears: ptr(6), ComputedYears: ptr(6.5)},
		Levels:     seniority.Levels{Resume: seniority.LevelSenior, JD: seniority.LevelSenior, RequiredYears: 5},
		Title:      title.Result{Alignment: title.AlignmentExact},
	}
}

func TestScorePerfect(t *testing.T) {
	breakdown, total := Score(strongInput())

	require.Len(t, breakdown, len(Categories))
	for _, name := range Categories {
		c := breakdown[name]
		assert.Equal(t, c.Max, c.Raw, name)
		assert.Equal(t, c.Weight, c.Weighted, name)
		assert.Zero(t, c.Missing(), name)
	}
	assert.Equal(t, 100.0, total)
	assert.Equal(t, TierExcellent, TierOf(total))
}

func TestScoreIsDeterministic(t *testing.T) {
	in := strongInput()
	in.Skills = skillResult(9, 5)
	in.Placement = structure.Placement{Summary: 1, Experience: 2}
	in.Assessment = seniority.Assessment{ClaimedYears: ptr(10), ComputedYears: ptr(7), Mismatch: true}
	in.Title = title.Result{Alignment: title.AlignmentPartial}

	first, firstTotal := Score(in)
	second, secondTotal := Score(in)

	assert.Equal(t, first, second)
	assert.Equal(t, firstTotal, secondTotal)
	assert.Less(t, firstTotal, 100.0)
}

func TestKeywordOverlapTiers(t *testing.T) {
	tests := []struct {
		present int
		want    float64
	}{
		{10, 40}, {8, 40}, {7, 30}, {6, 30}, {5, 20}, {4, 20}, {3, 10}, {0, 10},
	}
	for _, tt := range tests {
		in := Input{Skills: skillResult(10, tt.present)}
		breakdown, _ := Score(in)
		assert.Equal(t, tt.want, breakdown[KeywordOverlap].Raw, "present=%d", tt.present)
	}
}

func TestKeywordOverlapCountsStuffed(t *testing.T) {
	r := skillResult(5, 2)
	r.Stuffed = []string{"x", "y"}
	in := Input{Skills: r}

	assert.Equal(t, 80.0, in.MatchRate())
	breakdown, _ := Score(in)
	assert.Equal(t, 40.0, breakdown[KeywordOverlap].Raw)
}

func TestNoJDSkills(t *testing.T) {
	for _, in := range []Input{{}, {Skills: &skills.Result{}}} {
		breakdown, _ := Score(in)
		assert.Zero(t, breakdown[KeywordOverlap].Raw)
		assert.Equal(t, "no JD skills identified", breakdown[KeywordOverlap].Note)
	}
}

func TestKeywordPlacement(t *testing.T) {
	breakdown, _ := Score(Input{Placement: structure.Placement{Summary: 1, Experience: 2, Skills: 3}})
	// (5 + 6 + 3) * 25 / 35 = 10
	assert.Equal(t, 10.0, breakdown[KeywordPlacement].Raw)
	assert.Equal(t, 8.0, breakdown[KeywordPlacement].Weighted)

	breakdown, _ = Score(Input{Placement: structure.Placement{Summary: 1}})
	assert.Equal(t, 3.6, breakdown[KeywordPlacement].Raw)
}

func TestExperience(t *testing.T) {
	tests := []struct {
		name     string
		years    *float64
		required float64
		want     float64
	}{
		{name: "no requirement", years: nil, required: 0, want: 15},
		{name: "meets", years: ptr(5), required: 5, want: 15},
		{name: "one short", years: ptr(4.2), required: 5, want: 10},
		{name: "two short", years: ptr(3), required: 5, want: 5},
		{name: "far short", years: ptr(1), required: 5, want: 0},
		{name: "unknown years", years: nil, required: 3, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				Assessment: seniority.Assessment{ComputedYears: tt.years},
				Levels:     seniority.Levels{RequiredYears: tt.required},
			}
			breakdown, _ := Score(in)
			assert.Equal(t, tt.want, breakdown[Experience].Raw)
		})
	}
}

func TestExperiencePrefersComputedYears(t *testing.T) {
	in := Input{
		Assessment: seniority.Assessment{ClaimedYears: ptr(10), ComputedYears: ptr(2)},
		Levels:     seniority.Levels{RequiredYears: 5},
	}
	breakdown, _ := Score(in)
	assert.Equal(t, 0.0, breakdown[Experience].Raw)
}

func TestEducationGate(t *testing.T) {
	breakdown, _ := Score(Input{Signals: structure.Signals{DegreeRequired: true}})
	assert.Zero(t, breakdown[Education].Raw)

	breakdown, _ = Score(Input{EducationRequired: "Bachelor's in CS"})
	assert.Zero(t, breakdown[Education].Raw)

	breakdown, _ = Score(Input{EducationRequired: "none"})
	assert.Equal(t, 10.0, breakdown[Education].Raw)

	breakdown, _ = Score(Input{Signals: structure.Signals{DegreeRequired: true, HasDegree: true}})
	assert.Equal(t, 10.0, breakdown[Education].Raw)
}

func TestFormattingContactStructure(t *testing.T) {
	in := Input{Signals: structure.Signals{
		HasEmail: true,
		Sections: structure.Sections{Present: map[string]bool{
			structure.SectionExperience: true,
			structure.SectionSkills:     true,
		}},
		Metrics:   2,
		DateCount: 0,
	}}
	breakdown, _ := Score(in)

	// 3 (two sections) + 1 (email only) + 1 (two metrics)
	assert.Equal(t, 5.0, breakdown[Formatting].Raw)
	assert.Equal(t, 2.0, breakdown[Contact].Raw)
	assert.Equal(t, 2.0, breakdown[Structure].Raw)
	assert.Equal(t, 1.0, breakdown[Impact].Raw)
}

func TestContactCap(t *testing.T) {
	breakdown, _ := Score(Input{Signals: structure.Signals{HasEmail: true, HasPhone: true, HasLinkedIn: true}})
	assert.Equal(t, 4.5, breakdown[Contact].Raw)

	breakdown, _ = Score(Input{Signals: structure.Signals{HasEmail: true, HasPhone: true, HasLocation: true, HasLinkedIn: true}})
	assert.Equal(t, 5.0, breakdown[Contact].Raw)
}

func TestImpactTiers(t *testing.T) {
	for metrics, want := range map[int]float64{0: 0, 1: 1, 3: 2.5, 5: 4, 8: 5, 20: 5} {
		breakdown, _ := Score(Input{Signals: structure.Signals{Metrics: metrics}})
		assert.Equal(t, want, breakdown[Impact].Raw, "metrics=%d", metrics)
	}
}

func TestSeniority(t *testing.T) {
	tests := []struct {
		name      string
		resume    seniority.Level
		jd        seniority.Level
		alignment title.Alignment
		mismatch  bool
		want      float64
	}{
		{"equal", seniority.LevelSenior, seniority.LevelSenior, title.AlignmentExact, false, 5},
		{"one over", seniority.LevelManagement, seniority.LevelSenior, title.AlignmentExact, false, 4},
		{"one under", seniority.LevelMid, seniority.LevelSenior, title.AlignmentExact, false, 2},
		{"far under", seniority.LevelEntry, seniority.LevelManagement, title.AlignmentExact, false, 1},
		{"partial title", seniority.LevelSenior, seniority.LevelSenior, title.AlignmentPartial, false, 4.5},
		{"unrelated title", seniority.LevelSenior, seniority.LevelSenior, title.AlignmentUnrelated, false, 4},
		{"mismatch", seniority.LevelSenior, seniority.LevelSenior, title.AlignmentExact, true, 4},
		{"floored", seniority.LevelEntry, seniority.LevelManagement, title.AlignmentUnrelated, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{
				Levels:     seniority.Levels{Resume: tt.resume, JD: tt.jd},
				Title:      title.Result{Alignment: tt.alignment},
				Assessment: seniority.Assessment{Mismatch: tt.mismatch},
			}
			breakdown, _ := Score(in)
			assert.Equal(t, tt.want, breakdown[Seniority].Raw)
		})
	}
}

func TestCustomWeights(t *testing.T) {
	in := strongInput()
	in.Weights = Weights{KeywordOverlap: 50, KeywordPlacement: 50}

	breakdown, total := Score(in)
	assert.Equal(t, 100.0, total)
	assert.Zero(t, breakdown[Education].Weighted)
	assert.Zero(t, breakdown[Education].Weight)
}

func TestTierOf(t *testing.T) {
	assert.Equal(t, TierExcellent, TierOf(85))
	assert.Equal(t, TierGood, TierOf(84.9))
	assert.Equal(t, TierFair, TierOf(55))
	assert.Equal(t, TierBorderline, TierOf(40))
	assert.Equal(t, TierPoor, TierOf(39.9))
}
