package cmd

import (
	"fmt"
	"runtime"

	"github.com/spigell/resume-matcher/internal/ai"

	"github.com/spf13/cobra"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the default extraction models",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s version: %s (%s)\n", app, version, runtime.Version())
		for _, provider := range []string{ai.ProviderAnthropic, ai.ProviderGemini} {
			fmt.Fprintf(out, "  %s default model: %s\n", provider, ai.ResolveModel(provider, ""))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
