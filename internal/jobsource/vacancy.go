package jobsource

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Vacancy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	KeySkills   []struct {
		Name string `json:"name"`
	} `json:"key_skills"`
	Experience struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"experience"`
	Employer struct {
		Name string `json:"name"`
	} `json:"employer"`
	AlternateURL string `json:"alternate_url"`
}

// experienceYears maps hh.ru experience buckets to a phrase the seniority
// analyzer understands.
var experienceYears = map[string]string{
	"noExperience": "",
	"between1And3": "1-3 years of experience",
	"between3And6": "3-6 years of experience",
	"moreThan6":    "6+ years of experience",
}

// Text renders the vacancy as a plain-text job description: title first,
// then the description, required experience and key skills.
func (v *Vacancy) Text() (string, error) {
	body, err := htmlToText(v.Description)
	if err != nil {
		return "", fmt.Errorf("vacancy %s description: %w", v.ID, err)
	}

	parts := []string{strings.TrimSpace(v.Name)}
	if v.Employer.Name != "" {
		parts = append(parts, "Company: "+v.Employer.Name)
	}
	parts = append(parts, body)

	if phrase := experienceYears[v.Experience.ID]; phrase != "" {
		parts = append(parts, "Requirements: "+phrase)
	}

	if len(v.KeySkills) > 0 {
		names := make([]string, 0, len(v.KeySkills))
		for _, s := range v.KeySkills {
			names = append(names, s.Name)
		}
		parts = append(parts, "Key skills: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, "\n\n"), nil
}

func htmlToText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
