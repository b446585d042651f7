package ai

import (
	"errors"
	"time"
)

var (
	// ErrExtractionUnavailable marks a backend failure, timeout or missing backend.
	ErrExtractionUnavailable = errors.New("extraction unavailable")
	// ErrMalformedExtraction marks a response that was only partially usable.
	ErrMalformedExtraction = errors.New("malformed extraction")
)

// minTitleRunes is the shortest job title accepted from extraction.
const minTitleRunes = 4

// Period is one employment interval reported by extraction.
type Period struct {
	Title   string    `json:"title,omitempty"`
	Company string    `json:"company,omitempty"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end,omitempty"`
	Current bool      `json:"current,omitempty"`
}

// Profile holds structured fields extracted from a résumé/JD pair. Every field
// is optional: nil pointers and empty slices mean "not provided".
type Profile struct {
	JobTitle          *string  `json:"job_title,omitempty"`
	SeniorityLevel    string   `json:"seniority_level,omitempty"`
	YearsOfExperience *float64 `json:"years_of_experience,omitempty"`
	RequiredYears     *float64 `json:"required_years,omitempty"`
	EducationRequired string   `json:"education_required,omitempty"`
	Education         []string `json:"education,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	Skills            []string `json:"resume_skills,omitempty"`
	JDRequiredSkills  []string `json:"jd_required_skills,omitempty"`
	JDPreferredSkills []string `json:"jd_preferred_skills,omitempty"`
	MatchedSkills     []string `json:"matched_skills,omitempty"`
	MissingSkills     []string `json:"missing_skills,omitempty"`
	EmploymentPeriods []Period `json:"employment_periods,omitempty"`
}

// Title returns the gated job title.
func (p *Profile) Title() (string, bool) {
	if p == nil || p.JobTitle == nil {
		return "", false
	}
	return *p.JobTitle, true
}

// OutcomeKind tags the result of an extraction call.
type OutcomeKind int

const (
	KindUnavailable OutcomeKind = iota
	KindSuccess
	KindMalformed
)

func (k OutcomeKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindMalformed:
		return "malformed"
	default:
		return "unavailable"
	}
}

// Outcome is Success(profile), Unavailable or Malformed(partial profile).
type Outcome struct {
	Kind    OutcomeKind
	Err     error
	profile *Profile
}

func Success(p *Profile) Outcome {
	if p == nil {
		p = &Profile{}
	}
	return Outcome{Kind: KindSuccess, profile: p}
}

func Unavailable(err error) Outcome {
	if err == nil {
		err = ErrExtractionUnavailable
	}
	return Outcome{Kind: KindUnavailable, Err: err}
}

func Malformed(p *Profile, err error) Outcome {
	if p == nil {
		p = &Profile{}
	}
	if err == nil {
		err = ErrMalformedExtraction
	}
	return Outcome{Kind: KindMalformed, profile: p, Err: err}
}

// Profile returns the extracted profile for Success and Malformed outcomes.
func (o Outcome) Profile() (*Profile, bool) {
	if o.Kind == KindUnavailable || o.profile == nil {
		return nil, false
	}
	return o.profile, true
}

// Title returns the gated job title when the outcome carries one.
func (o Outcome) Title() (string, bool) {
	p, ok := o.Profile()
	if !ok {
		return "", false
	}
	return p.Title()
}
