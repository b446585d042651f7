package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStrings(t *testing.T) {
	fields := Strings(
		"  provider  ", "  gemini  ",
		"ignored", "   ",
		"   ", "empty key",
		"dangling",
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "provider" || fields[0].String != "gemini" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if empty := Strings(); len(empty) != 0 {
		t.Fatalf("expected no fields, got %d", len(empty))
	}
}

func TestWithNilLogger(t *testing.T) {
	enriched := With(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Must not panic.
	enriched.Info("another log")
}

func TestForAnalysis(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	ForAnalysis(log, " 7c1f ").Debug("analysis started")
	ForAnalysis(log, "").Debug("no id")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldAnalysisID]; got != "7c1f" {
		t.Fatalf("expected analysis id 7c1f, got %q", got)
	}
	if _, ok := entries[1].ContextMap()[FieldAnalysisID]; ok {
		t.Fatalf("expected empty analysis id to be omitted")
	}
}

func TestForExtractor(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	ForExtractor(zap.New(core), "anthropic", "").Info("extraction request")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldProvider] != "anthropic" {
		t.Fatalf("expected provider anthropic, got %q", ctx[FieldProvider])
	}
	if _, ok := ctx[FieldModel]; ok {
		t.Fatalf("expected empty model to be omitted")
	}
}
