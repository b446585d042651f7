package engine

import (
	"github.com/spigell/resume-matcher/internal/diagnostics"
	"github.com/spigell/resume-matcher/internal/scoring"
	"github.com/spigell/resume-matcher/internal/seniority"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/title"
)

type Result struct {
	AnalysisID     string                           `json:"analysis_id"`
	TotalScore     float64                          `json:"total_score"`
	Tier           scoring.Tier                     `json:"tier"`
	ScoreBreakdown scoring.Breakdown                `json:"score_breakdown"`
	MatchedSkills  []string                         `json:"matched_skills"`
	MissingSkills  []string                         `json:"missing_skills"`
	StuffedSkills  []string                         `json:"stuffed_skills"`
	SoftSkills     []string                         `json:"soft_skills"`
	Skills         []skills.Classification          `json:"skills"`
	Seniority      SeniorityReport                  `json:"seniority"`
	Title          title.Result                     `json:"title"`
	Audit          map[string][]diagnostics.Finding `json:"audit"`
	Suggestions    []diagnostics.Suggestion         `json:"suggestions"`
	Density        skills.Density                   `json:"density"`
	Extraction     ExtractionReport                 `json:"extraction"`
	Truncated      Truncation                       `json:"truncated"`
}

type SeniorityReport struct {
	seniority.Assessment
	seniority.Levels
}

type ExtractionReport struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Truncation struct {
	Resume         bool `json:"resume"`
	JobDescription bool `json:"job_description"`
}
