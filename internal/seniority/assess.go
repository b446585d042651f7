package seniority

import (
	"math"
	"sort"
	"time"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/utils"
)

type Source string

const (
	SourceExtraction Source = "extraction"
	SourceText       Source = "text"
	SourceNone       Source = "none"
)

type Config struct {
	JuniorTolerance float64
	SeniorTolerance float64
	SeniorCutoff    float64
}

func DefaultConfig() Config {
	return Config{JuniorTolerance: 1, SeniorTolerance: 2, SeniorCutoff: 5}
}

// Claim is the experience the candidate states.
type Claim struct {
	Years  *float64
	Source Source
}

// Timeline is the set of employment intervals used to compute experience.
type Timeline struct {
	Intervals []Interval
	Source    Source
}

type Assessment struct {
	ClaimedYears   *float64 `json:"claimed_years"`
	ClaimedSource  Source   `json:"claimed_source"`
	ComputedYears  *float64 `json:"computed_years"`
	PeriodsSource  Source   `json:"periods_source"`
	ToleranceYears float64  `json:"tolerance_years"`
	Mismatch       bool     `json:"mismatch"`
}

// Years returns the computed experience when known, else the claimed one, else 0.
func (a Assessment) Years() float64 {
	if a.ComputedYears != nil {
		return *a.ComputedYears
	}
	if a.ClaimedYears != nil {
		return *a.ClaimedYears
	}
	return 0
}

// ClaimedYears prefers a plausible extracted value over an explicit statement
// found in the résumé text.
func ClaimedYears(profile *ai.Profile, resumeText string) Claim {
	if profile != nil && profile.YearsOfExperience != nil {
		if v := *profile.YearsOfExperience; v > 0 && v < 60 {
			return Claim{Years: &v, Source: SourceExtraction}
		}
	}
	if v, ok := YearsFromText(resumeText); ok {
		return Claim{Years: &v, Source: SourceText}
	}
	return Claim{Source: SourceNone}
}

// ChooseTimeline prefers extracted employment periods over text parsed ones.
// Extracted periods pass the same span filter as parsed ones; when none
// survive the parsed periods are used.
func ChooseTimeline(profile *ai.Profile, parsed []Interval, now time.Time) Timeline {
	if profile != nil {
		var intervals []Interval
		for _, p := range profile.EmploymentPeriods {
			end := p.End
			if p.Current {
				end = monthStart(now)
			}
			span := monthsBetween(p.Start, end)
			if span < minSpanMonths || span > maxSpanMonths {
				continue
			}
			intervals = append(intervals, Interval{Start: p.Start, End: end, Current: p.Current})
		}
		if len(intervals) > 0 {
			return Timeline{Intervals: intervals, Source: SourceExtraction}
		}
	}
	if len(parsed) > 0 {
		return Timeline{Intervals: parsed, Source: SourceText}
	}
	return Timeline{Source: SourceNone}
}

// Assess compares claimed and computed experience. A mismatch is only asserted
// when both values are known.
func Assess(claim Claim, timeline Timeline, now time.Time, cfg Config) Assessment {
	a := Assessment{
		ClaimedYears:  claim.Years,
		ClaimedSource: claim.Source,
		PeriodsSource: timeline.Source,
	}
	if a.ClaimedSource == "" {
		a.ClaimedSource = SourceNone
	}
	if a.PeriodsSource == "" {
		a.PeriodsSource = SourceNone
	}

	// Zero covered months is no evidence, not zero years.
	if months := UnionMonths(timeline.Intervals, now); months > 0 {
		years := utils.Round1(float64(months) / 12)
		a.ComputedYears = &years
	} else {
		a.PeriodsSource = SourceNone
	}

	// Tolerance scales with the stated experience.
	reference := a.Years()
	if claim.Years != nil {
		reference = *claim.Years
	}
	a.ToleranceYears = cfg.JuniorTolerance
	if reference >= cfg.SeniorCutoff {
		a.ToleranceYears = cfg.SeniorTolerance
	}

	if a.ClaimedYears != nil && a.ComputedYears != nil {
		a.Mismatch = math.Abs(*a.ClaimedYears-*a.ComputedYears) > a.ToleranceYears
	}
	return a
}

// UnionMonths counts the months covered by at least one interval, so
// overlapping jobs are not counted twice.
func UnionMonths(intervals []Interval, now time.Time) int {
	type span struct{ from, to int }
	spans := make([]span, 0, len(intervals))
	for _, iv := range intervals {
		end := iv.End
		if iv.Current || end.IsZero() {
			end = now
		}
		from, to := monthIndex(iv.Start), monthIndex(end)
		if to > from {
			spans = append(spans, span{from, to})
		}
	}
	if len(spans) == 0 {
		return 0
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].from < spans[j].from })

	total := 0
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.from <= cur.to {
			if s.to > cur.to {
				cur.to = s.to
			}
			continue
		}
		total += cur.to - cur.from
		cur = s
	}
	return total + cur.to - cur.from
}
