package ai

import (
	"fmt"
	"strings"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderGemini:    "gemini-2.5-flash",
}

// NormalizeProvider lowercases the provider name and defaults to anthropic.
func NormalizeProvider(provider string) (string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return ProviderAnthropic, nil
	}
	if _, ok := defaultModels[provider]; !ok {
		return "", fmt.Errorf("unsupported ai provider: %s", provider)
	}
	return provider, nil
}

// ResolveModel returns the configured model or the built-in default for provider.
func ResolveModel(provider, configured string) string {
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured
	}
	if p, err := NormalizeProvider(provider); err == nil {
		return defaultModels[p]
	}
	return defaultModels[ProviderAnthropic]
}
