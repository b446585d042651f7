package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/resume-matcher/internal/scoring"
	"github.com/spigell/resume-matcher/internal/title"
	"github.com/spigell/resume-matcher/internal/utils"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

const (
	DefaultMaxSuggestions = 5
	notApplicable         = "N/A"
	placementFloor        = 15
	experienceFloor       = 10
	formattingFloor       = 7
	metricsFloor          = 3
)

type Suggestion struct {
	Key                  string   `json:"-"`
	Area                 string   `json:"area"`
	Priority             Priority `json:"priority"`
	Issue                string   `json:"issue"`
	OriginalText         string   `json:"original_text"`
	Fix                  []string `json:"fix"`
	EstimatedScoreImpact float64  `json:"estimated_score_impact"`
}

type Input struct {
	scoring.Input
	Breakdown      scoring.Breakdown
	MaxSuggestions int
}

type Report struct {
	Audit       map[string][]Finding `json:"audit"`
	Suggestions []Suggestion         `json:"suggestions"`
}

// Diagnose builds the audit and the ranked suggestion list from the same
// signals the scorer consumed.
func Diagnose(in Input) Report {
	return Report{
		Audit:       audit(in),
		Suggestions: rank(suggest(in), in.MaxSuggestions),
	}
}

func suggest(in Input) []Suggestion {
	var out []Suggestion
	add := func(s Suggestion) {
		if s.OriginalText == "" {
			s.OriginalText = notApplicable
		}
		out = append(out, s)
	}
	b := in.Breakdown

	if in.DegreeRequired() && !in.Signals.HasDegree {
		add(Suggestion{
			Key:      "education",
			Area:     "Education Section",
			Priority: PriorityHigh,
			Issue:    "The job requires a degree but none was detected in the résumé.",
			Fix: []string{
				"Add an Education section with degree, field, institution and graduation year",
				"Place it after Experience",
			},
			EstimatedScoreImpact: b[scoring.Education].Missing(),
		})
	}

	if in.Skills != nil && len(in.Skills.Skills) > 0 {
		rate := in.MatchRate()
		switch {
		case rate < 40:
			add(Suggestion{
				Key:      "skills.coverage",
				Area:     "Skills Coverage",
				Priority: PriorityHigh,
				Issue:    fmt.Sprintf("Only %.0f%% of the JD skills appear in the résumé, below the 40%% screening floor.", rate),
				Fix: []string{
					"Add the missing skills you genuinely have: " + strings.Join(head(in.Skills.Missing, 5), ", "),
					"Show each one in use in two or three experience bullets",
				},
				EstimatedScoreImpact: b[scoring.KeywordOverlap].Missing(),
			})
		case rate < 60:
			add(Suggestion{
				Key:      "skills.coverage",
				Area:     "Skills Coverage",
				Priority: PriorityMedium,
				Issue:    fmt.Sprintf("%.0f%% of the JD skills appear in the résumé. 60%% is needed to rank as qualified.", rate),
				Fix: []string{
					"Add the missing skills you genuinely have: " + strings.Join(head(in.Skills.Missing, 3), ", "),
				},
				EstimatedScoreImpact: b[scoring.KeywordOverlap].Missing(),
			})
		}
	}

	if b[scoring.KeywordPlacement].Raw < placementFloor {
		matched := []string(nil)
		if in.Skills != nil {
			matched = head(in.Skills.Matched, 3)
		}
		if in.Placement.Summary < 2 {
			add(Suggestion{
				Key:      "placement",
				Area:     "Professional Summary",
				Priority: PriorityHigh,
				Issue:    fmt.Sprintf("Only %d matched skills appear in the summary.", in.Placement.Summary),
				Fix: []string{
					"Rewrite the summary to name your strongest matching skills: " + joinOr(matched, "the core JD skills"),
				},
				EstimatedScoreImpact: b[scoring.KeywordPlacement].Missing(),
			})
		}
		if in.Placement.Experience < 4 {
			add(Suggestion{
				Key:      "placement",
				Area:     "Experience Bullets",
				Priority: PriorityHigh,
				Issue:    fmt.Sprintf("Only %d matched skills appear in the experience section.", in.Placement.Experience),
				Fix: []string{
					"Rewrite three or four bullets to show " + joinOr(head(matched, 2), "the JD skills") + " in use with a result",
				},
				EstimatedScoreImpact: b[scoring.KeywordPlacement].Missing(),
			})
		}
	}

	if b[scoring.Experience].Raw < experienceFloor {
		years := in.Assessment.Years()
		add(Suggestion{
			Key:      "experience",
			Area:     "Experience Timeline",
			Priority: PriorityHigh,
			Issue:    fmt.Sprintf("The résumé shows %.1f years and the role asks for %.0f.", years, in.Levels.RequiredYears),
			Fix: []string{
				"Check that every role has a visible date range such as \"Jan 2020 - Present\"",
				"Include relevant internships, freelance work and side projects",
				"Emphasize scope where the gap is real: team size, budget, ownership",
			},
			EstimatedScoreImpact: b[scoring.Experience].Missing(),
		})
	}

	if a := in.Assessment; a.Mismatch {
		add(Suggestion{
			Key:      "timeline",
			Area:     "Experience Timeline",
			Priority: PriorityMedium,
			Issue: fmt.Sprintf("You state %.1f years but your employment dates add up to %.1f.",
				*a.ClaimedYears, *a.ComputedYears),
			Fix: []string{
				"Make the stated years match the dates listed under Experience",
			},
			EstimatedScoreImpact: pointValue(b[scoring.Seniority], 1),
		})
	}

	if f := b[scoring.Formatting]; f.Raw < formattingFloor {
		add(Suggestion{
			Key:      "formatting",
			Area:     "Document Structure",
			Priority: PriorityMedium,
			Issue:    "Formatting issues detected: " + strings.Join(formattingIssues(in), ", ") + ".",
			Fix: []string{
				"Use standard headings: Summary, Experience, Education, Skills",
				"Put email and phone number at the top",
			},
			EstimatedScoreImpact: f.Missing(),
		})
	}

	if m := in.Signals.Metrics; m < metricsFloor {
		add(Suggestion{
			Key:      "impact",
			Area:     "Quantified Achievements",
			Priority: PriorityMedium,
			Issue:    fmt.Sprintf("Only %d quantified results found.", m),
			Fix: []string{
				"Add a measurable result to at least five bullets: percentages, amounts, team size or users",
			},
			EstimatedScoreImpact: b[scoring.Impact].Missing(),
		})
	}

	if in.Skills != nil && len(in.Skills.Stuffed) > 0 {
		add(Suggestion{
			Key:      "stuffing",
			Area:     "Keyword Density",
			Priority: PriorityMedium,
			Issue:    "These skills repeat beyond natural density: " + strings.Join(in.Skills.Stuffed, ", ") + ".",
			Fix: []string{
				"Keep each skill to a few mentions where it is actually used",
			},
		})
	}

	if in.Title.Alignment == title.AlignmentUnrelated {
		add(Suggestion{
			Key:      "title",
			Area:     "Headline",
			Priority: PriorityLow,
			Issue:    fmt.Sprintf("The target title %q does not appear in the résumé.", in.Title.Title),
			Fix: []string{
				fmt.Sprintf("Use %q or a close variant in your headline or summary if it reflects your work", in.Title.Title),
			},
			EstimatedScoreImpact: pointValue(b[scoring.Seniority], 1),
		})
	}

	if c := b[scoring.Contact]; c.Raw < c.Max || !in.Signals.HasLinkedIn {
		add(Suggestion{
			Key:                  "contact",
			Area:                 "Contact Details",
			Priority:             PriorityLow,
			Issue:                "Missing contact details: " + strings.Join(contactGaps(in), ", ") + ".",
			Fix:                  []string{"Add the missing details to the header line"},
			EstimatedScoreImpact: c.Missing(),
		})
	}

	return out
}

// rank merges suggestions sharing a key and returns the top limit of them.
func rank(in []Suggestion, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	byKey := make(map[string]int, len(in))
	var out []Suggestion
	for _, s := range in {
		i, ok := byKey[s.Key]
		if !ok {
			byKey[s.Key] = len(out)
			out = append(out, s)
			continue
		}

		kept := &out[i]
		if s.Priority.rank() < kept.Priority.rank() {
			s.Fix = mergeFix(s.Fix, kept.Fix)
			s.EstimatedScoreImpact = maxImpact(s, *kept)
			*kept = s
			continue
		}
		kept.Fix = mergeFix(kept.Fix, s.Fix)
		kept.EstimatedScoreImpact = maxImpact(*kept, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if a, b := out[i].Priority.rank(), out[j].Priority.rank(); a != b {
			return a < b
		}
		if out[i].EstimatedScoreImpact != out[j].EstimatedScoreImpact {
			return out[i].EstimatedScoreImpact > out[j].EstimatedScoreImpact
		}
		return out[i].Key < out[j].Key
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func mergeFix(base, extra []string) []string {
	merged := append([]string(nil), base...)
	seen := make(map[string]struct{}, len(base))
	for _, f := range base {
		seen[f] = struct{}{}
	}
	for _, f := range extra {
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			merged = append(merged, f)
		}
	}
	return merged
}

func maxImpact(a, b Suggestion) float64 {
	return max(a.EstimatedScoreImpact, b.EstimatedScoreImpact)
}

// pointValue converts raw points of a category into total-score points.
func pointValue(c scoring.Category, raw float64) float64 {
	if c.Max == 0 {
		return 0
	}
	return utils.Round1(raw / c.Max * c.Weight)
}

func formattingIssues(in Input) []string {
	var issues []string
	if missing := in.Signals.Sections.Missing(); len(missing) > 0 {
		issues = append(issues, "missing headings ("+strings.Join(missing, ", ")+")")
	}
	if len(in.Signals.Sections.NonStandard) > 0 {
		issues = append(issues, "non-standard headings")
	}
	if !in.Signals.HasEmail || !in.Signals.HasPhone {
		issues = append(issues, "incomplete contact line")
	}
	if in.Signals.Metrics < 2 {
		issues = append(issues, "few quantified results")
	}
	if len(issues) == 0 {
		issues = append(issues, "weak overall layout")
	}
	return issues
}

func contactGaps(in Input) []string {
	s := in.Signals
	var gaps []string
	if !s.HasEmail {
		gaps = append(gaps, "email")
	}
	if !s.HasPhone {
		gaps = append(gaps, "phone")
	}
	if !s.HasLocation {
		gaps = append(gaps, "location")
	}
	if !s.HasLinkedIn {
		gaps = append(gaps, "LinkedIn URL")
	}
	return gaps
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
