package skills

import (
	"sort"
	"strings"
)

const densityExplanation = "High density in core keywords signals subject matter expertise to the ATS. " +
	"If your résumé counts are low compared to the JD, the algorithm may rank you as a secondary match."

type Status string

const (
	StatusMatched Status = "matched"
	StatusMissing Status = "missing"
	StatusStuffed Status = "stuffed"
)

type Config struct {
	Threshold        int
	PrimaryThreshold int
	PrimaryCount     int
	DensityLimit     int
}

func DefaultConfig() Config {
	return Config{Threshold: 6, PrimaryThreshold: 12, PrimaryCount: 3, DensityLimit: 5}
}

type Skill struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	ResumeCount    int    `json:"resume_count"`
	JDCount        int    `json:"jd_count"`
	CentralityRank int    `json:"centrality_rank"`
	Primary        bool   `json:"primary"`
}

type Classification struct {
	Skill     Skill  `json:"skill"`
	Status    Status `json:"status"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
}

type Density struct {
	Labels         []string `json:"labels"`
	JDTargetCounts []int    `json:"jd_counts"`
	ResumeCounts   []int    `json:"resume_counts"`
	Explanation    string   `json:"explanation"`
}

type Result struct {
	Skills          []Skill          `json:"skills"`
	Classifications []Classification `json:"classifications"`
	Matched         []string         `json:"matched"`
	Missing         []string         `json:"missing"`
	Stuffed         []string         `json:"stuffed"`
	Density         Density          `json:"density"`
	SoftSkills      []string         `json:"soft_skills"`
}

// Present is the number of JD skills found in the résumé, stuffed included.
func (r *Result) Present() int {
	return len(r.Matched) + len(r.Stuffed)
}

// Analyze classifies jdSkills against the résumé. It is a shortcut for
// NewInventory followed by Inventory.Analyze.
func Analyze(resumeText, jdText string, jdSkills []string, cfg Config) *Result {
	return NewInventory(resumeText, jdText, cfg.DensityLimit).Analyze(jdSkills, cfg)
}

// Analyze ranks jdSkills by centrality and classifies each one as matched,
// missing or stuffed. An empty list yields an empty but valid result.
func (inv *Inventory) Analyze(jdSkills []string, cfg Config) *Result {
	names := canonicalList(jdSkills)

	firstQuarter := inv.jd.Len() / 4
	type ranked struct {
		skill     Skill
		relevance int
	}
	rankedSkills := make([]ranked, 0, len(names))
	for _, name := range names {
		forms := Forms(name)
		s := Skill{
			Name:        name,
			Category:    CategoryOf(name),
			ResumeCount: inv.resume.CountAny(forms),
			JDCount:     inv.jd.CountAny(forms),
		}

		relevance := s.JDCount
		if inv.jdHead.CountAny(forms) > 0 {
			relevance += 3
		}
		for _, form := range forms {
			if p := inv.jd.First(form); p >= 0 && p < firstQuarter {
				relevance += 2
				break
			}
		}
		rankedSkills = append(rankedSkills, ranked{skill: s, relevance: relevance})
	}

	sort.SliceStable(rankedSkills, func(i, j int) bool {
		return rankedSkills[i].relevance > rankedSkills[j].relevance
	})

	result := &Result{
		Skills:          make([]Skill, 0, len(rankedSkills)),
		Classifications: make([]Classification, 0, len(rankedSkills)),
		Matched:         []string{},
		Missing:         []string{},
		Stuffed:         []string{},
		SoftSkills:      inv.SoftSkills,
	}

	for i, r := range rankedSkills {
		s := r.skill
		s.CentralityRank = i + 1
		s.Primary = s.CentralityRank <= cfg.PrimaryCount

		threshold := cfg.Threshold
		if s.Primary {
			threshold = cfg.PrimaryThreshold
		}

		status := StatusMatched
		switch {
		case s.ResumeCount == 0:
			status = StatusMissing
			result.Missing = append(result.Missing, s.Name)
		case s.ResumeCount > threshold:
			status = StatusStuffed
			result.Stuffed = append(result.Stuffed, s.Name)
		default:
			result.Matched = append(result.Matched, s.Name)
		}

		result.Skills = append(result.Skills, s)
		result.Classifications = append(result.Classifications, Classification{
			Skill:     s,
			Status:    status,
			Count:     s.ResumeCount,
			Threshold: threshold,
		})
	}

	result.Density = inv.skillDensity(result.Skills, cfg.DensityLimit)
	return result
}

func (inv *Inventory) skillDensity(ranked []Skill, limit int) Density {
	if len(ranked) == 0 {
		return inv.WordDensity
	}

	density := Density{Explanation: densityExplanation}
	for i, s := range ranked {
		if i == limit {
			break
		}
		density.Labels = append(density.Labels, s.Name)
		density.JDTargetCounts = append(density.JDTargetCounts, s.JDCount)
		density.ResumeCounts = append(density.ResumeCounts, s.ResumeCount)
	}
	return density
}

func canonicalList(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		name := Canonical(strings.TrimSpace(item))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
