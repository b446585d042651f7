package diagnostics

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-matcher/internal/scoring"
	"github.com/spigell/resume-matcher/internal/title"
)

const (
	GroupContact    = "Contact & Searchability"
	GroupStructure  = "Document Structure"
	GroupAlignment  = "Alignment & Seniority"
	GroupKeywords   = "Keyword Intelligence"
	GroupExperience = "Experience & Qualifications"
	GroupTimeline   = "Experience Timeline"
)

type Status string

const (
	StatusHit  Status = "hit"
	StatusMiss Status = "miss"
)

type Finding struct {
	Category string `json:"category"`
	Status   Status `json:"status"`
	Message  string `json:"message"`
}

func hit(category, format string, args ...any) Finding {
	return Finding{Category: category, Status: StatusHit, Message: fmt.Sprintf(format, args...)}
}

func miss(category, format string, args ...any) Finding {
	return Finding{Category: category, Status: StatusMiss, Message: fmt.Sprintf(format, args...)}
}

// placementStrong judges the scored placement against the floor the placement
// suggestion uses, so a hit here never comes with a placement suggestion.
func placementStrong(in Input) bool {
	return in.Breakdown[scoring.KeywordPlacement].Raw >= placementFloor
}

func audit(in Input) map[string][]Finding {
	out := map[string][]Finding{
		GroupContact:    contactFindings(in),
		GroupStructure:  structureFindings(in),
		GroupAlignment:  alignmentFindings(in),
		GroupKeywords:   keywordFindings(in),
		GroupExperience: experienceFindings(in),
	}
	if timeline := timelineFindings(in); len(timeline) > 0 {
		out[GroupTimeline] = timeline
	}
	return out
}

func contactFindings(in Input) []Finding {
	s := in.Signals
	var out []Finding

	if s.HasLocation {
		out = append(out, hit("location", "Geo-Searchability Verified: a city or state is listed, so location filters can find you."))
	} else {
		out = append(out, miss("location", "Searchability Risk: no city or state found. Recruiters filtering by location may never see this résumé."))
	}

	switch {
	case s.HasEmail && s.HasPhone:
		out = append(out, hit("channels", "Contact Complete: email and phone number are both present."))
	case s.HasEmail:
		out = append(out, miss("channels", "Incomplete Contact: no phone number found."))
	case s.HasPhone:
		out = append(out, miss("channels", "Incomplete Contact: no email address found."))
	default:
		out = append(out, miss("channels", "Incomplete Contact: neither email nor phone number found."))
	}

	if s.HasLinkedIn {
		out = append(out, hit("linkedin", "LinkedIn Profile Detected."))
	} else {
		out = append(out, miss("linkedin", "LinkedIn Missing: add your profile URL next to your contact details."))
	}
	return out
}

func structureFindings(in Input) []Finding {
	sections := in.Signals.Sections
	var out []Finding

	switch {
	case len(sections.NonStandard) > 0:
		out = append(out, miss("headings", "Non-Standard Headings Detected: %s. Parsers may not map these to standard sections.",
			strings.Join(sections.NonStandard, ", ")))
	case len(sections.Missing()) > 0:
		out = append(out, miss("headings", "Missing Standard Headings: %s.", strings.Join(sections.Missing(), ", ")))
	default:
		out = append(out, hit("headings", "Standard Structure: summary, experience, education and skills headings found."))
	}

	if in.Signals.DateCount >= 2 {
		out = append(out, hit("dates", "Timeline Parsed: %d dates found.", in.Signals.DateCount))
	} else {
		out = append(out, miss("dates", "Date Format Issue: employment dates could not be read. Use formats like \"Jan 2020 - Present\"."))
	}
	return out
}

func alignmentFindings(in Input) []Finding {
	var out []Finding

	t := in.Title
	switch t.Alignment {
	case title.AlignmentExact, title.AlignmentPartial:
		out = append(out, hit("title", "Title Aligned: the résumé reflects the target title %q.", t.Title))
	case title.AlignmentUnrelated:
		out = append(out, miss("title", "Title Gap: the target title %q does not appear in the résumé.", t.Title))
	}

	l := in.Levels
	years := in.Assessment.Years()
	switch {
	case l.RequiredYears > 0 && years < l.RequiredYears:
		out = append(out, miss("level", "Hard Gate Risk: the role asks for %.0f+ years and the résumé shows %.1f.", l.RequiredYears, years))
	case l.Gap() > 0:
		out = append(out, hit("level", "Competitive Advantage: %s profile for a %s role.", l.Resume.Label(), l.JD.Label()))
	case l.Gap() == 0:
		out = append(out, hit("level", "Ideal Seniority Match: %s.", l.JD.Label()))
	default:
		out = append(out, miss("level", "Experience Gap: %s profile for a %s role.", l.Resume.Label(), l.JD.Label()))
	}
	return out
}

func keywordFindings(in Input) []Finding {
	var out []Finding

	if placementStrong(in) {
		out = append(out, hit("placement", "Keyword Placement Strong: %d matched skills in the summary and %d in experience.",
			in.Placement.Summary, in.Placement.Experience))
	} else {
		out = append(out, miss("placement", "Keyword Placement Weak: %d matched skills in the summary and %d in experience.",
			in.Placement.Summary, in.Placement.Experience))
	}

	if in.Skills != nil && len(in.Skills.Stuffed) > 0 {
		out = append(out, miss("stuffing", "Over-Optimisation Detected: %s repeated beyond natural density.",
			strings.Join(in.Skills.Stuffed, ", ")))
	} else {
		out = append(out, hit("stuffing", "Natural Keyword Density."))
	}

	if in.Skills != nil && len(in.Skills.Skills) > 0 {
		rate := in.MatchRate()
		f := miss
		if rate >= 60 {
			f = hit
		}
		out = append(out, f("coverage", "Keyword Coverage: %d of %d JD skills found (%.0f%%).",
			in.Skills.Present(), len(in.Skills.Skills), rate))
	}
	return out
}

func experienceFindings(in Input) []Finding {
	var out []Finding

	if m := in.Signals.Metrics; m >= 3 {
		out = append(out, hit("impact", "Impact Signals Detected: %d quantified results.", m))
	} else {
		out = append(out, miss("impact", "Weak Impact Signals: %d quantified results. Add numbers, percentages or amounts.", m))
	}

	s := in.Signals
	switch {
	case in.DegreeRequired() && !s.HasDegree:
		out = append(out, miss("education", "Education Hard Gate Risk: the role requires a degree and none was detected."))
	case in.DegreeRequired():
		out = append(out, hit("education", "Education Requirement Cleared."))
	case s.DegreePreferred && s.HasDegree:
		out = append(out, hit("education", "Education Bonus: a preferred degree is present."))
	case !s.HasDegree && !s.Sections.Present["education"]:
		out = append(out, miss("education", "Education Section Missing."))
	default:
		out = append(out, hit("education", "Education Verified."))
	}
	return out
}

func timelineFindings(in Input) []Finding {
	a := in.Assessment
	if a.ComputedYears == nil {
		return nil
	}

	if a.Mismatch {
		return []Finding{miss("timeline", "Timeline Mismatch: %.1f years claimed, employment dates add up to %.1f.",
			*a.ClaimedYears, *a.ComputedYears)}
	}
	return []Finding{hit("timeline", "Timeline Verified: employment dates add up to %.1f years.", *a.ComputedYears)}
}
