package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldAnalysisID ties every entry of one analysis run together.
	FieldAnalysisID = "analysis_id"
	// FieldStep names the engine stage emitting the entry.
	FieldStep = "engine_step"
	// FieldProvider is the extraction backend, anthropic or gemini.
	FieldProvider = "ai_provider"
	// FieldModel is the extraction model identifier.
	FieldModel = "ai_model"
)

// Strings turns key/value pairs into zap string fields. Pairs with a blank key
// or value are dropped, as is a trailing key without a value.
func Strings(kv ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, value := strings.TrimSpace(kv[i]), strings.TrimSpace(kv[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// With attaches fields to logger. A nil logger becomes a no-op one.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// ForAnalysis scopes a logger to a single analysis run.
func ForAnalysis(logger *zap.Logger, analysisID string) *zap.Logger {
	return With(logger, Strings(FieldAnalysisID, analysisID)...)
}

// ForExtractor tags entries with the extraction backend in use.
func ForExtractor(logger *zap.Logger, provider, model string) *zap.Logger {
	return With(logger, Strings(FieldProvider, provider, FieldModel, model)...)
}
