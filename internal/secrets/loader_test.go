package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-key \n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	t.Setenv("TEST_SECRET_KEY", "env-key")

	got, err := Load(Source{Name: "api key", Value: "inline", File: path, Env: []string{"TEST_SECRET_KEY"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file-key" {
		t.Fatalf("expected file-key, got %q", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path, Value: "inline"}); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")})
	if err == nil || !strings.Contains(err.Error(), "reading api key") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoadInlineBeforeEnv(t *testing.T) {
	t.Setenv("TEST_SECRET_KEY", "env-key")

	got, err := Load(Source{Value: " inline ", Env: []string{"TEST_SECRET_KEY"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected inline, got %q", got)
	}
}

func TestLoadEnvOrder(t *testing.T) {
	t.Setenv("TEST_SECRET_FIRST", "")
	t.Setenv("TEST_SECRET_SECOND", "second")

	got, err := Load(Source{Name: "api key", Env: []string{"TEST_SECRET_FIRST", "TEST_SECRET_SECOND"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected second, got %q", got)
	}
}

func TestLoadNotConfigured(t *testing.T) {
	t.Setenv("TEST_SECRET_UNSET", "")

	_, err := Load(Source{Name: "api key", Env: []string{"TEST_SECRET_UNSET"}})
	if err == nil || !strings.Contains(err.Error(), "TEST_SECRET_UNSET") {
		t.Fatalf("expected not configured error naming env, got %v", err)
	}

	_, err = Load(Source{})
	if err == nil || err.Error() != "secret is not configured" {
		t.Fatalf("unexpected error: %v", err)
	}
}
