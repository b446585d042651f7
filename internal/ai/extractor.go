package ai

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/utils"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// Generator sends a prompt to a language model and returns its text response.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Request carries the already truncated documents sent for extraction.
type Request struct {
	Resume         string
	JobDescription string
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

type Extractor struct {
	generator Generator
	provider  string
	schema    *gojsonschema.Schema
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator Generator, provider string, maxLogLength int, log *zap.Logger) (*Extractor, error) {
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	return &Extractor{
		generator: generator,
		provider:  provider,
		schema:    schema,
		logger:    logger.ForExtractor(log, provider, generator.Model()),
		maxLogLen: maxLogLength,
	}, nil
}

func (e *Extractor) Provider() string {
	if e == nil {
		return ""
	}
	return e.provider
}

func (e *Extractor) Model() string {
	if e == nil || e.generator == nil {
		return ""
	}
	return e.generator.Model()
}

// Extract performs a single extraction attempt. It never returns an error:
// backend failures become Unavailable and unusable responses become Malformed.
func (e *Extractor) Extract(ctx context.Context, req Request) (outcome Outcome) {
	if e == nil || e.generator == nil {
		return Unavailable(fmt.Errorf("%w: no backend configured", ErrExtractionUnavailable))
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction panicked", zap.Any("panic", r))
			outcome = Unavailable(fmt.Errorf("%w: %v", ErrExtractionUnavailable, r))
		}
	}()

	prompt := buildPrompt(req.Resume, req.JobDescription)

	e.logger.Debug("extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.Preview(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		e.logger.Warn("extraction unavailable", zap.Error(err))
		return Unavailable(fmt.Errorf("%w: %w", ErrExtractionUnavailable, err))
	}

	e.logger.Debug("extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.Preview(raw, e.maxLogLen)),
	)

	outcome = parseResponse(raw, func(doc map[string]any) error {
		return validate(e.schema, doc)
	})
	if outcome.Kind == KindMalformed {
		e.logger.Warn("extraction malformed", zap.Error(outcome.Err))
	}
	return outcome
}

func buildPrompt(resume, jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n{{JOB_DESCRIPTION}}\n\nRésumé:\n{{RESUME}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", resume)
	return prompt
}
