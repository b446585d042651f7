package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/seniority"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/structure"
)

// Step is one of the parallel branches of an analysis. Each step writes only
// its own fields of state.
type Step interface {
	Name() string
	Run(ctx context.Context, s *state) error
}

type state struct {
	resume *document.Document
	jd     *document.Document
	now    time.Time
	logger *zap.Logger

	outcome   ai.Outcome
	inventory *skills.Inventory
	periods   []seniority.Interval
	signals   structure.Signals
}

var errExtractionDisabled = errors.New("extraction disabled")

type extractionStep struct {
	extractor Extractor
	enabled   bool
	timeout   time.Duration
}

func (extractionStep) Name() string { return "extraction" }

func (e extractionStep) Run(ctx context.Context, s *state) error {
	if !e.enabled || e.extractor == nil {
		s.outcome = ai.Unavailable(errExtractionDisabled)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	s.outcome = e.extractor.Extract(ctx, ai.Request{
		Resume:         s.resume.Truncated,
		JobDescription: s.jd.Truncated,
	})
	return nil
}

type inventoryStep struct {
	densityLimit int
}

func (inventoryStep) Name() string { return "inventory" }

func (i inventoryStep) Run(_ context.Context, s *state) error {
	s.inventory = skills.NewInventory(s.resume.Full, s.jd.Full, i.densityLimit)
	return nil
}

type evidenceStep struct{}

func (evidenceStep) Name() string { return "evidence" }

func (evidenceStep) Run(_ context.Context, s *state) error {
	s.signals = structure.Analyze(s.resume.Full, s.jd.Full)

	periods, err := seniority.ParsePeriods(s.resume.Full, s.now)
	if err != nil {
		s.logger.Debug("no employment periods in résumé text", zap.Error(err))
		return nil
	}
	s.periods = periods
	return nil
}
