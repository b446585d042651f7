package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/engine"
)

type stubAnalyzer struct {
	resume, jd string
	result     *engine.Result
	err        error
	panic      bool
}

func (s *stubAnalyzer) Analyze(_ context.Context, resume, jd string) (*engine.Result, error) {
	if s.panic {
		panic("boom")
	}
	s.resume, s.jd = resume, jd
	return s.result, s.err
}

var (
	validResume = strings.Repeat("Backend engineer shipping Go services. ", 6)
	validJD     = strings.Repeat("We need a Go engineer. ", 3)
)

func newTestServer(t *testing.T, a Analyzer, maxChars int) (*Server, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	cfg := config.Default().Server
	if maxChars > 0 {
		cfg.MaxChars = maxChars
	}
	return New(a, cfg, zap.New(core)), logs
}

func post(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp ErrorResponse
	if rec.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func payload(resume, jd string) string {
	raw, _ := json.Marshal(map[string]string{"resume": resume, "job_description": jd})
	return string(raw)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{}, 0)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeOK(t *testing.T) {
	stub := &stubAnalyzer{result: &engine.Result{AnalysisID: "id-1", TotalScore: 72.5, Tier: "good"}}
	s, logs := newTestServer(t, stub, 0)

	rec, _ := post(t, s, payload(validResume, validJD))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "id-1", got["analysis_id"])
	assert.Equal(t, 72.5, got["total_score"])
	assert.Equal(t, validResume, stub.resume)
	assert.Equal(t, validJD, stub.jd)

	entries := logs.FilterMessage("request complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "id-1", entries[0].ContextMap()["analysis_id"])
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"missing resume", `{"job_description": "x"}`, "resume", "resume is required"},
		{"short resume", payload("too short", validJD), "resume", "resume must be at least 100 characters"},
		{"few words", payload(strings.Repeat("word ", 3)+strings.Repeat("x", 100), validJD), "resume", "resume must contain at least 20 words"},
		{"short jd", payload(validResume, "Go engineer"), "job_description", "job_description must be at least 50 characters"},
		{"malformed json", `{"resume":`, "", "request body must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAnalyzer{}
			s, _ := newTestServer(t, stub, 0)

			rec, resp := post(t, s, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, codeInvalidRequest, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Empty(t, stub.resume)
		})
	}
}

func TestAnalyzeTooLarge(t *testing.T) {
	s, _ := newTestServer(t, &stubAnalyzer{}, 150)

	rec, resp := post(t, s, payload(validResume+validResume, validJD))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, engine.FieldResume, resp.Error.Field)
}

func TestAnalyzeErrors(t *testing.T) {
	inputErr := &engine.InputError{Field: engine.FieldResume, Message: "document is empty", Err: document.ErrEmptyDocument}

	tests := []struct {
		name   string
		stub   *stubAnalyzer
		status int
		code   string
	}{
		{"input error", &stubAnalyzer{err: inputErr}, http.StatusUnprocessableEntity, codeInvalidInput},
		{"internal error", &stubAnalyzer{err: errors.New("boom")}, http.StatusInternalServerError, codeInternal},
		{"panic", &stubAnalyzer{panic: true}, http.StatusInternalServerError, codeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.stub, 0)

			rec, resp := post(t, s, payload(validResume, validJD))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
