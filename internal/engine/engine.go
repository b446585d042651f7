package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/diagnostics"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/scoring"
	"github.com/spigell/resume-matcher/internal/seniority"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/structure"
	"github.com/spigell/resume-matcher/internal/title"
)

const (
	FieldResume         = "resume"
	FieldJobDescription = "job_description"
)

// Extractor is the AI extraction backend. *ai.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, req ai.Request) ai.Outcome
	Provider() string
	Model() string
}

// InputError reports an unusable input document.
type InputError struct {
	Field   string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Engine scores résumés against job descriptions. It holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	cfg       *config.Config
	extractor Extractor
	logger    *zap.Logger
	now       func() time.Time
}

func New(cfg *config.Config, extractor Extractor, log *zap.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		cfg:       cfg,
		extractor: extractor,
		logger:    log,
		now:       time.Now,
	}, nil
}

// Analyze runs a full analysis. Only empty inputs are reported as errors;
// extraction and parsing failures degrade the result instead.
func (e *Engine) Analyze(ctx context.Context, resumeText, jdText string) (*Result, error) {
	id := uuid.NewString()
	log := logger.ForAnalysis(e.logger, id)

	resume, err := preprocess(FieldResume, resumeText, e.cfg.Extraction.MaxChars)
	if err != nil {
		return nil, err
	}
	jd, err := preprocess(FieldJobDescription, jdText, e.cfg.Extraction.MaxChars)
	if err != nil {
		return nil, err
	}

	s := &state{resume: resume, jd: jd, now: e.now(), logger: log}
	if err := e.runSteps(ctx, log, s); err != nil {
		return nil, err
	}

	return e.assemble(id, log, s), nil
}

func preprocess(field, raw string, ceiling int) (*document.Document, error) {
	doc, err := document.Preprocess(raw, ceiling)
	if err != nil {
		return nil, &InputError{Field: field, Message: "document is empty", Err: err}
	}
	return doc, nil
}

func (e *Engine) steps() []Step {
	return []Step{
		extractionStep{
			extractor: e.extractor,
			enabled:   e.cfg.Extraction.Enabled,
			timeout:   e.cfg.Extraction.Timeout,
		},
		inventoryStep{densityLimit: e.cfg.Density.Limit},
		evidenceStep{},
	}
}

func (e *Engine) runSteps(ctx context.Context, log *zap.Logger, s *state) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, step := range e.steps() {
		g.Go(func() error {
			started := time.Now()
			if err := step.Run(gctx, s); err != nil {
				return fmt.Errorf("%s: %w", step.Name(), err)
			}
			log.Debug("engine step",
				zap.String(logger.FieldStep, step.Name()),
				zap.Duration("took", time.Since(started)),
			)
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) assemble(id string, log *zap.Logger, s *state) *Result {
	e.logOutcome(log, s.outcome)
	profile, _ := s.outcome.Profile()

	skillResult := s.inventory.Analyze(jdSkills(profile, s.inventory), e.cfg.SkillsConfig())

	present := append(append([]string(nil), skillResult.Matched...), skillResult.Stuffed...)
	placement := structure.PlacementOf(s.resume.Full, present)

	assessment := seniority.Assess(
		seniority.ClaimedYears(profile, s.resume.Full),
		seniority.ChooseTimeline(profile, s.periods, s.now),
		s.now,
		e.cfg.SeniorityConfig(),
	)
	levels := seniority.DetectLevels(profile, s.resume.Full, s.jd.Full, assessment.Years())
	titleResult := title.Check(s.outcome, s.resume.Full, s.jd.Full)

	in := scoring.Input{
		Skills:     skillResult,
		Placement:  placement,
		Signals:    s.signals,
		Assessment: assessment,
		Levels:     levels,
		Title:      titleResult,
		Weights:    e.cfg.ScoringWeights(),
	}
	if profile != nil {
		in.EducationRequired = profile.EducationRequired
	}

	breakdown, total := scoring.Score(in)
	report := diagnostics.Diagnose(diagnostics.Input{
		Input:          in,
		Breakdown:      breakdown,
		MaxSuggestions: e.cfg.Suggestions.Max,
	})

	log.Info("analysis complete",
		zap.Float64("total_score", total),
		zap.Int("jd_skills", len(skillResult.Skills)),
		zap.Int("suggestions", len(report.Suggestions)),
	)

	return &Result{
		AnalysisID:     id,
		TotalScore:     total,
		Tier:           scoring.TierOf(total),
		ScoreBreakdown: breakdown,
		MatchedSkills:  nonNil(skillResult.Matched),
		MissingSkills:  nonNil(skillResult.Missing),
		StuffedSkills:  nonNil(skillResult.Stuffed),
		SoftSkills:     nonNil(skillResult.SoftSkills),
		Skills:         skillResult.Classifications,
		Seniority:      SeniorityReport{Assessment: assessment, Levels: levels},
		Title:          titleResult,
		Audit:          report.Audit,
		Suggestions:    nonNilSuggestions(report.Suggestions),
		Density:        skillResult.Density,
		Extraction:     e.extractionReport(s.outcome),
		Truncated:      Truncation{Resume: s.resume.WasTruncated, JobDescription: s.jd.WasTruncated},
	}
}

// jdSkills picks the authoritative JD skill list: the extracted required
// skills when present, the local inventory otherwise.
func jdSkills(profile *ai.Profile, inv *skills.Inventory) []string {
	if profile != nil && len(profile.JDRequiredSkills) > 0 {
		return profile.JDRequiredSkills
	}
	return inv.LexiconSkills
}

func (e *Engine) logOutcome(log *zap.Logger, outcome ai.Outcome) {
	switch {
	case outcome.Kind == ai.KindSuccess:
		return
	case errors.Is(outcome.Err, errExtractionDisabled):
		log.Debug("extraction skipped", zap.String("reason", outcome.Err.Error()))
	default:
		log.Warn("continuing with local analysis",
			zap.String("extraction", outcome.Kind.String()),
			zap.Error(outcome.Err),
		)
	}
}

func (e *Engine) extractionReport(outcome ai.Outcome) ExtractionReport {
	r := ExtractionReport{Status: outcome.Kind.String()}
	if e.extractor != nil && e.cfg.Extraction.Enabled {
		r.Provider = e.extractor.Provider()
		r.Model = e.extractor.Model()
	}
	if outcome.Err != nil {
		r.Error = outcome.Err.Error()
	}
	return r
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func nonNilSuggestions(items []diagnostics.Suggestion) []diagnostics.Suggestion {
	if items == nil {
		return []diagnostics.Suggestion{}
	}
	return items
}
