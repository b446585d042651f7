package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spigell/resume-matcher/internal/diagnostics"
	"github.com/spigell/resume-matcher/internal/engine"
	"github.com/spigell/resume-matcher/internal/scoring"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"
)

const (
	PromptBreakdown   = "Score breakdown"
	PromptAudit       = "Audit"
	PromptSuggestions = "Suggestions"
	PromptSkills      = "Skills"
	PromptDumpToFile  = "Dump result to file"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var auditGroups = []string{
	diagnostics.GroupContact,
	diagnostics.GroupStructure,
	diagnostics.GroupAlignment,
	diagnostics.GroupKeywords,
	diagnostics.GroupExperience,
	diagnostics.GroupTimeline,
}

// browse shows the result section by section until the user exits.
func browse(result *engine.Result, logger *zap.Logger) error {
	fmt.Printf("Score: %.1f (%s)\n", result.TotalScore, result.Tier)

	prompt := promptui.Select{
		Label: "Show",
		Items: []string{PromptBreakdown, PromptAudit, PromptSuggestions, PromptSkills, PromptDumpToFile, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(os.Stdout, action, result, logger); err != nil {
			return err
		}
	}
}

func handleAction(w io.Writer, action string, result *engine.Result, logger *zap.Logger) error {
	switch action {
	case PromptBreakdown:
		return printBreakdown(w, result.ScoreBreakdown)
	case PromptAudit:
		printAudit(w, result.Audit)
		return nil
	case PromptSuggestions:
		printSuggestions(w, result.Suggestions)
		return nil
	case PromptSkills:
		return printSkills(w, result)
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printBreakdown(w io.Writer, breakdown scoring.Breakdown) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tWEIGHTED\tWEIGHT\tNOTE")
	for _, name := range scoring.Categories {
		c, ok := breakdown[name]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%s\n", name, c.Weighted, c.Weight, c.Note)
	}
	return tw.Flush()
}

func printAudit(w io.Writer, audit map[string][]diagnostics.Finding) {
	for _, group := range auditGroups {
		findings, ok := audit[group]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\n", group)
		for _, f := range findings {
			mark := "+"
			if f.Status == diagnostics.StatusMiss {
				mark = "-"
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", mark, f.Category, f.Message)
		}
	}
}

func printSuggestions(w io.Writer, suggestions []diagnostics.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No suggestions, the résumé covers this job description well.")
		return
	}
	for i, s := range suggestions {
		fmt.Fprintf(w, "%d. [%s] %s (+%.1f)\n   %s\n", i+1, s.Priority, s.Area, s.EstimatedScoreImpact, s.Issue)
		for _, fix := range s.Fix {
			fmt.Fprintf(w, "   - %s\n", fix)
		}
	}
}

func printSkills(w io.Writer, result *engine.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKILL\tSTATUS\tRESUME\tJD\tRANK")
	for _, c := range result.Skills {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", c.Skill.Name, c.Status, c.Count, c.Skill.JDCount, c.Skill.CentralityRank)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(result.SoftSkills) > 0 {
		fmt.Fprintf(w, "Soft skills: %s\n", strings.Join(result.SoftSkills, ", "))
	}
	return nil
}

func dumpToTmpFile(result *engine.Result) (string, error) {
	file, err := os.CreateTemp("", "analysis_*.json")
	if err != nil {
		return "", err
	}
	file.Close()

	if err := writeResult(file.Name(), result); err != nil {
		return "", err
	}
	return file.Name(), nil
}
