package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/resume-matcher/internal/scoring"
	"github.com/spigell/resume-matcher/internal/seniority"
	"github.com/spigell/resume-matcher/internal/skills"
)

type Config struct {
	Extraction  *Extraction  `mapstructure:"extraction" validate:"required"`
	Stuffing    *Stuffing    `mapstructure:"stuffing" validate:"required"`
	Seniority   *Seniority   `mapstructure:"seniority" validate:"required"`
	Weights     *Weights     `mapstructure:"weights" validate:"required"`
	Density     *Density     `mapstructure:"density" validate:"required"`
	Suggestions *Suggestions `mapstructure:"suggestions" validate:"required"`
	Server      *Server      `mapstructure:"server" validate:"required"`
}

type Extraction struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider" validate:"omitempty,oneof=anthropic gemini"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxChars     int           `mapstructure:"max-chars" validate:"gte=0"`
	MaxLogLength int           `mapstructure:"max-log-length" validate:"gte=0"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
}

type Stuffing struct {
	Threshold        int `mapstructure:"threshold" validate:"gt=0"`
	PrimaryThreshold int `mapstructure:"primary-threshold" validate:"gtefield=Threshold"`
	PrimaryCount     int `mapstructure:"primary-count" validate:"gte=0"`
}

type Seniority struct {
	JuniorTolerance float64 `mapstructure:"junior-tolerance" validate:"gte=0"`
	SeniorTolerance float64 `mapstructure:"senior-tolerance" validate:"gte=0"`
	SeniorCutoff    float64 `mapstructure:"senior-cutoff" validate:"gt=0"`
}

type Weights struct {
	KeywordOverlap   float64 `mapstructure:"keyword-overlap" validate:"gte=0"`
	KeywordPlacement float64 `mapstructure:"keyword-placement" validate:"gte=0"`
	Experience       float64 `mapstructure:"experience" validate:"gte=0"`
	Education        float64 `mapstructure:"education" validate:"gte=0"`
	Formatting       float64 `mapstructure:"formatting" validate:"gte=0"`
	Contact          float64 `mapstructure:"contact" validate:"gte=0"`
	Structure        float64 `mapstructure:"structure" validate:"gte=0"`
	Impact           float64 `mapstructure:"impact" validate:"gte=0"`
	Seniority        float64 `mapstructure:"seniority" validate:"gte=0"`
}

type Density struct {
	Limit int `mapstructure:"limit" validate:"gt=0"`
}

type Suggestions struct {
	Max int `mapstructure:"max" validate:"gt=0"`
}

type Server struct {
	Address  string `mapstructure:"address" validate:"required"`
	MaxChars int    `mapstructure:"max-chars" validate:"gt=0"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	w := scoring.DefaultWeights()
	st := skills.DefaultConfig()
	sn := seniority.DefaultConfig()

	return &Config{
		Extraction: &Extraction{
			Enabled:      true,
			Provider:     "anthropic",
			Timeout:      20 * time.Second,
			MaxChars:     4000,
			MaxLogLength: 200,
		},
		Stuffing: &Stuffing{
			Threshold:        st.Threshold,
			PrimaryThreshold: st.PrimaryThreshold,
			PrimaryCount:     st.PrimaryCount,
		},
		Seniority: &Seniority{
			JuniorTolerance: sn.JuniorTolerance,
			SeniorTolerance: sn.SeniorTolerance,
			SeniorCutoff:    sn.SeniorCutoff,
		},
		Weights: &Weights{
			KeywordOverlap:   w.KeywordOverlap,
			KeywordPlacement: w.KeywordPlacement,
			Experience:       w.Experience,
			Education:        w.Education,
			Formatting:       w.Formatting,
			Contact:          w.Contact,
			Structure:        w.Structure,
			Impact:           w.Impact,
			Seniority:        w.Seniority,
		},
		Density:     &Density{Limit: st.DensityLimit},
		Suggestions: &Suggestions{Max: 5},
		Server:      &Server{Address: ":8080", MaxChars: 50000},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that weights add up to 100.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is required")
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if sum := c.Weights.sum(); sum < 99.99 || sum > 100.01 {
		return fmt.Errorf("invalid config: weights add up to %.2f, expected 100", sum)
	}
	return nil
}

func (w *Weights) sum() float64 {
	return w.KeywordOverlap + w.KeywordPlacement + w.Experience + w.Education +
		w.Formatting + w.Contact + w.Structure + w.Impact + w.Seniority
}

func (c *Config) SkillsConfig() skills.Config {
	return skills.Config{
		Threshold:        c.Stuffing.Threshold,
		PrimaryThreshold: c.Stuffing.PrimaryThreshold,
		PrimaryCount:     c.Stuffing.PrimaryCount,
		DensityLimit:     c.Density.Limit,
	}
}

func (c *Config) SeniorityConfig() seniority.Config {
	return seniority.Config{
		JuniorTolerance: c.Seniority.JuniorTolerance,
		SeniorTolerance: c.Seniority.SeniorTolerance,
		SeniorCutoff:    c.Seniority.SeniorCutoff,
	}
}

func (c *Config) ScoringWeights() scoring.Weights {
	return scoring.Weights(*c.Weights)
}
