package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/claude"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/engine"
	"github.com/spigell/resume-matcher/internal/jobsource"
	"github.com/spigell/resume-matcher/internal/loader"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var apiKeyEnv = map[string][]string{
	ai.ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	ai.ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "résumé file (.txt, .md, .pdf or .docx)")
	analyzeCmd.Flags().String("jd", "", "job description file (.txt, .md, .pdf or .docx)")
	analyzeCmd.Flags().String("hh-vacancy", "", "fetch the job description from an hh.ru vacancy id instead of a file")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "browse the result in an interactive menu")
	analyzeCmd.Flags().StringP("output", "o", "", "write the result as JSON to this file instead of stdout")

	analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "hh-vacancy")
	analyzeCmd.MarkFlagsOneRequired("jd", "hh-vacancy")
}

func analyze(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), "stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	// do not bother error since the config is already validated
	pretty, _ := json.MarshalIndent(cfg, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	resumePath, _ := cmd.Flags().GetString("resume")
	resumeText, err := loader.File(resumePath)
	if err != nil {
		logger.Fatal("loading the résumé", zap.Error(err), zap.String("file", resumePath))
	}

	jdText, err := jobDescription(ctx, cmd, logger)
	if err != nil {
		logger.Fatal("loading the job description", zap.Error(err))
	}

	extractor, err := newExtractor(ctx, cfg.Extraction, logger)
	if err != nil {
		logger.Warn("skipping ai extraction", zap.Error(err))
	}

	eng, err := engine.New(cfg, extractor, logger)
	if err != nil {
		logger.Fatal("creating the engine", zap.Error(err))
	}

	result, err := eng.Analyze(ctx, resumeText, jdText)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	logger.Info("analysis complete",
		zap.String("analysis_id", result.AnalysisID),
		zap.Float64("total_score", result.TotalScore),
		zap.String("tier", string(result.Tier)),
	)

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := writeResult(output, result); err != nil {
			logger.Fatal("writing the result", zap.Error(err), zap.String("filename", output))
		}
		logger.Info("result written", zap.String("filename", output))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := browse(result, logger); err != nil && !errors.Is(err, errExit) {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	if output, _ := cmd.Flags().GetString("output"); output == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatal("printing the result", zap.Error(err))
		}
	}
}

// jobDescription reads the job description from a file or from hh.ru.
func jobDescription(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) (string, error) {
	if id, _ := cmd.Flags().GetString("hh-vacancy"); id != "" {
		token, err := resolveToken()
		if err != nil {
			return "", err
		}

		vacancy, err := jobsource.New(logger, token).Vacancy(ctx, id)
		if err != nil {
			return "", err
		}
		logger.Info("fetched the vacancy",
			zap.String("vacancy_id", vacancy.ID),
			zap.String("vacancy_name", vacancy.Name),
			zap.String("url", vacancy.AlternateURL),
		)
		return vacancy.Text()
	}

	path, _ := cmd.Flags().GetString("jd")
	return loader.File(path)
}

// resolveToken returns the hh.ru token when a token file is configured.
// Public vacancies are readable without one.
func resolveToken() (string, error) {
	tokenFile := strings.TrimSpace(viper.GetString("hh-token-file"))
	if tokenFile == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
	})
}

// newExtractor builds the AI extractor. A nil extractor with a nil error means
// extraction is switched off.
func newExtractor(ctx context.Context, cfg *config.Extraction, logger *zap.Logger) (engine.Extractor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider, err := ai.NormalizeProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	model := ai.ResolveModel(provider, cfg.Model)

	apiKey, err := secrets.Load(secrets.Source{
		Name: provider + " api key",
		File: cfg.APIKeyFile,
		Env:  apiKeyEnv[provider],
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or set extraction.api-key-file)", err)
	}

	var generator ai.Generator
	switch provider {
	case ai.ProviderGemini:
		generator, err = gemini.NewGenerator(ctx, apiKey, model)
	default:
		generator, err = claude.NewGenerator(apiKey, model)
	}
	if err != nil {
		return nil, err
	}

	extractor, err := ai.NewExtractor(generator, provider, cfg.MaxLogLength, logger)
	if err != nil {
		return nil, err
	}
	return extractor, nil
}

func writeResult(filename string, result *engine.Result) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
