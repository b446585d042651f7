package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

type wirePeriod struct {
	Title   string `mapstructure:"title"`
	Company string `mapstructure:"company"`
	Start   string `mapstructure:"start"`
	End     string `mapstructure:"end"`
}

var periodLayouts = []string{
	"2006-01",
	"2006-01-02",
	"2006/01",
	"01/2006",
	"01.2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

func parseResponse(raw string, validator func(map[string]any) error) Outcome {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Malformed(&Profile{}, fmt.Errorf("%w: parse response: %w", ErrMalformedExtraction, err))
	}
	if data == nil {
		return Malformed(&Profile{}, fmt.Errorf("%w: response is not a JSON object", ErrMalformedExtraction))
	}

	profile, decodeErrs := decodeProfile(data)

	var problems []error
	if validator != nil {
		if err := validator(data); err != nil {
			problems = append(problems, err)
		}
	}
	problems = append(problems, decodeErrs...)

	if len(problems) > 0 {
		return Malformed(profile, fmt.Errorf("%w: %w", ErrMalformedExtraction, errors.Join(problems...)))
	}
	return Success(profile)
}

func decodeProfile(data map[string]any) (*Profile, []error) {
	var errs []error
	p := &Profile{}

	if title, ok := decodeField[string](data, "job_title", &errs); ok {
		title = strings.TrimSpace(title)
		if utf8.RuneCountInString(title) >= minTitleRunes {
			p.JobTitle = &title
		}
	}

	p.SeniorityLevel = strings.ToLower(decodeString(data, "seniority_level", &errs))
	p.EducationRequired = decodeString(data, "education_required", &errs)
	p.Summary = decodeString(data, "summary", &errs)

	if years, ok := decodeField[float64](data, "years_of_experience", &errs); ok && validYears(years) {
		p.YearsOfExperience = &years
	}
	if years, ok := decodeField[float64](data, "required_years", &errs); ok && validYears(years) {
		p.RequiredYears = &years
	}

	p.Education = decodeList(data, "education", &errs)
	p.Skills = decodeList(data, "resume_skills", &errs)
	p.JDRequiredSkills = decodeList(data, "jd_required_skills", &errs)
	p.JDPreferredSkills = decodeList(data, "jd_preferred_skills", &errs)
	p.MatchedSkills = decodeList(data, "matched_skills", &errs)
	p.MissingSkills = decodeList(data, "missing_skills", &errs)

	if periods, ok := decodeField[[]wirePeriod](data, "employment_periods", &errs); ok {
		p.EmploymentPeriods = convertPeriods(periods)
	}

	return p, errs
}

// decodeField decodes a single key. A field that fails to decode is reported
// and left absent so the rest of the profile stays usable.
func decodeField[T any](data map[string]any, key string, errs *[]error) (T, bool) {
	var out T
	raw, ok := data[key]
	if !ok || raw == nil {
		return out, false
	}

	var target T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &target,
	})
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return out, false
	}
	if err := decoder.Decode(raw); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return out, false
	}
	return target, true
}

func decodeString(data map[string]any, key string, errs *[]error) string {
	s, _ := decodeField[string](data, key, errs)
	return strings.TrimSpace(s)
}

func decodeList(data map[string]any, key string, errs *[]error) []string {
	items, ok := decodeField[[]string](data, key, errs)
	if !ok {
		return nil
	}
	return normalizeList(items)
}

// normalizeList trims, lowercases and deduplicates entries. Comma separated
// entries are split, models sometimes return "go, python" as one item.
func normalizeList(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validYears(v float64) bool {
	return v > 0 && v < 60
}

func convertPeriods(in []wirePeriod) []Period {
	out := make([]Period, 0, len(in))
	for _, wp := range in {
		start, ok := parsePeriodDate(wp.Start)
		if !ok {
			continue
		}
		period := Period{
			Title:   strings.TrimSpace(wp.Title),
			Company: strings.TrimSpace(wp.Company),
			Start:   start,
		}
		switch end := strings.ToLower(strings.TrimSpace(wp.End)); end {
		case "", "present", "current", "now":
			period.Current = true
		default:
			parsed, ok := parsePeriodDate(end)
			if !ok || parsed.Before(start) {
				continue
			}
			period.End = parsed
		}
		out = append(out, period)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePeriodDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
		// Month names may arrive lowercased.
		if t, err := time.Parse(layout, upperFirst(value)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// Drop any prose around the object.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}
