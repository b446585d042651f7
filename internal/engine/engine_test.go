package engine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/title"
)

const testResume = `Jane Doe
Austin, TX | jane@example.com | (512) 555-0134 | linkedin.com/in/janedoe

Summary
Senior backend engineer with 6 years of experience building Go services on Kubernetes.

Experience
Senior Backend Engineer, Acme | Jan 2020 - Present
- Cut p99 latency by 40% for 2 million users using Go and PostgreSQL
- Led a team of 5 engineers migrating 30 services to Kubernetes
Backend Engineer, Beta | Mar 2018 - Dec 2019
- Saved $200K per year by rewriting billing jobs in Go

Education
B.S. Computer Science, State University, 2017

Skills
Go, Kubernetes, PostgreSQL, Docker
`

const testJD = `Senior Backend Engineer

We are hiring a Senior Backend Engineer to build Go services.
Requirements: 5+ years of experience with Go, Kubernetes and Terraform.
Experience with PostgreSQL is a plus. Bachelor's degree required.
`

type stubExtractor struct {
	calls   atomic.Int32
	extract func(ctx context.Context, req ai.Request) ai.Outcome
}

func (s *stubExtractor) Extract(ctx context.Context, req ai.Request) ai.Outcome {
	s.calls.Add(1)
	return s.extract(ctx, req)
}

func (s *stubExtractor) Provider() string { return ai.ProviderAnthropic }
func (s *stubExtractor) Model() string    { return "stub-model" }

func newEngine(t *testing.T, cfg *config.Config, extractor Extractor, log *zap.Logger) *Engine {
	t.Helper()
	e, err := New(cfg, extractor, log)
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }
	return e
}

func strPtr(s string) *string { return &s }

func TestAnalyzeEmptyInputs(t *testing.T) {
	e := newEngine(t, nil, nil, nil)

	_, err := e.Analyze(context.Background(), " \n\t", testJD)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, FieldResume, inputErr.Field)
	assert.ErrorIs(t, err, document.ErrEmptyDocument)

	_, err = e.Analyze(context.Background(), testResume, "")
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, FieldJobDescription, inputErr.Field)
}

func TestAnalyzeWithoutExtractor(t *testing.T) {
	e := newEngine(t, nil, nil, nil)

	res, err := e.Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	_, err = uuid.Parse(res.AnalysisID)
	require.NoError(t, err)

	assert.Equal(t, "unavailable", res.Extraction.Status)
	assert.Empty(t, res.Extraction.Model)
	assert.Equal(t, title.SourceRegex, res.Title.Source)

	// Lexicon fallback finds the JD skills locally.
	assert.Contains(t, res.MatchedSkills, "go")
	assert.Contains(t, res.MatchedSkills, "kubernetes")
	assert.Contains(t, res.MissingSkills, "terraform")

	assert.Greater(t, res.TotalScore, 0.0)
	assert.LessOrEqual(t, res.TotalScore, 100.0)
	assert.Len(t, res.ScoreBreakdown, 9)
	require.NotNil(t, res.Seniority.ComputedYears)
	// Jan 2020 to Jun 2024 plus Mar 2018 to Dec 2019.
	assert.Equal(t, 6.2, *res.Seniority.ComputedYears)
}

func TestAnalyzeDisabledExtractionSkipsCall(t *testing.T) {
	cfg := config.Default()
	cfg.Extraction.Enabled = false
	stub := &stubExtractor{extract: func(context.Context, ai.Request) ai.Outcome {
		return ai.Success(&ai.Profile{})
	}}

	res, err := newEngine(t, cfg, stub, nil).Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	assert.Zero(t, stub.calls.Load())
	assert.Equal(t, "unavailable", res.Extraction.Status)
}

func TestAnalyzeUsesExtraction(t *testing.T) {
	years := 6.0
	stub := &stubExtractor{extract: func(_ context.Context, req ai.Request) ai.Outcome {
		assert.Contains(t, req.Resume, "Jane Doe")
		assert.Contains(t, req.JobDescription, "Terraform")
		return ai.Success(&ai.Profile{
			JobTitle:          strPtr("Senior Backend Engineer"),
			YearsOfExperience: &years,
			JDRequiredSkills:  []string{"go", "kubernetes", "terraform", "grpc"},
			SeniorityLevel:    "senior",
		})
	}}

	res, err := newEngine(t, nil, stub, nil).Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	assert.EqualValues(t, 1, stub.calls.Load())
	assert.Equal(t, "success", res.Extraction.Status)
	assert.Equal(t, "stub-model", res.Extraction.Model)
	assert.Equal(t, title.SourceAI, res.Title.Source)
	assert.Equal(t, "Senior Backend Engineer", res.Title.Title)

	assert.Equal(t, []string{"go", "kubernetes"}, res.MatchedSkills)
	assert.ElementsMatch(t, []string{"terraform", "grpc"}, res.MissingSkills)
	assert.False(t, res.Seniority.Mismatch)
}

func TestAnalyzeExtractionTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Extraction.Timeout = 20 * time.Millisecond

	stub := &stubExtractor{extract: func(ctx context.Context, _ ai.Request) ai.Outcome {
		<-ctx.Done()
		return ai.Unavailable(ctx.Err())
	}}

	core, logs := observer.New(zapcore.WarnLevel)
	res, err := newEngine(t, cfg, stub, zap.New(core)).Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	assert.Equal(t, "unavailable", res.Extraction.Status)
	assert.Contains(t, res.Extraction.Error, context.DeadlineExceeded.Error())

	entries := logs.FilterMessage("continuing with local analysis").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unavailable", entries[0].ContextMap()["extraction"])
	assert.NotEmpty(t, entries[0].ContextMap()["analysis_id"])
}

func TestAnalyzeMalformedKeepsPartialProfile(t *testing.T) {
	stub := &stubExtractor{extract: func(context.Context, ai.Request) ai.Outcome {
		return ai.Malformed(&ai.Profile{JDRequiredSkills: []string{"go", "rust"}}, errors.New("schema"))
	}}

	res, err := newEngine(t, nil, stub, nil).Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	assert.Equal(t, "malformed", res.Extraction.Status)
	assert.Equal(t, []string{"go"}, res.MatchedSkills)
	assert.Equal(t, []string{"rust"}, res.MissingSkills)
}

func TestAnalyzeConcurrentCallers(t *testing.T) {
	stub := &stubExtractor{extract: func(context.Context, ai.Request) ai.Outcome {
		return ai.Success(&ai.Profile{JDRequiredSkills: []string{"go"}})
	}}
	e := newEngine(t, nil, stub, nil)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Analyze(context.Background(), testResume, testJD)
			if assert.NoError(t, err) {
				ids[i] = res.AnalysisID
			}
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestResultJSON(t *testing.T) {
	res, err := newEngine(t, nil, nil, nil).Analyze(context.Background(), testResume, testJD)
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{
		"analysis_id", "total_score", "tier", "score_breakdown", "matched_skills", "missing_skills",
		"stuffed_skills", "soft_skills", "seniority", "title", "audit", "suggestions", "density",
		"extraction", "truncated",
	} {
		assert.Contains(t, doc, key)
	}

	seniority := doc["seniority"].(map[string]any)
	assert.Contains(t, seniority, "computed_years")
	assert.Contains(t, seniority, "jd_level")

	for _, s := range doc["suggestions"].([]any) {
		assert.NotContains(t, s.(map[string]any), "Key")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Weights.Impact = 90

	_, err := New(cfg, nil, nil)
	require.Error(t, err)
}
