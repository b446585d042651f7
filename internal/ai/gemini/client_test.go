package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	calls  int
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorJoinsParts(t *testing.T) {
	models := &fakeModels{resp: textResponse(`{"job_title":`, "  ", ` "Go Developer"}`)}
	g := &Generator{models: models, modelName: "gemini-2.5-flash"}

	output, err := g.GenerateContent(context.Background(), "  extract please ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "{\"job_title\":\n\"Go Developer\"}" {
		t.Fatalf("unexpected output: %q", output)
	}
	if models.model != "gemini-2.5-flash" {
		t.Fatalf("unexpected model: %s", models.model)
	}
	if models.prompt != "extract please" {
		t.Fatalf("unexpected prompt: %q", models.prompt)
	}
	if models.config == nil || models.config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response mime type")
	}
	if models.config.Temperature == nil || *models.config.Temperature != 0 {
		t.Fatalf("expected zero temperature")
	}
}

func TestGeneratorDoesNotRetry(t *testing.T) {
	apiErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	models := &fakeModels{err: apiErr}
	g := &Generator{models: models, modelName: "gemini-pro"}

	_, err := g.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}

	var target genai.APIError
	if !errors.As(err, &target) {
		t.Fatalf("expected api error to be wrapped, got %v", err)
	}

	if models.calls != 1 {
		t.Fatalf("expected single call, got %d", models.calls)
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	g := &Generator{models: &fakeModels{resp: textResponse("   ")}, modelName: "m"}
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty response")
	}

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	var nilGen *Generator
	if _, err := nilGen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for nil generator")
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	if _, err := NewGenerator(context.Background(), " ", "gemini-2.5-flash"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewGenerator(context.Background(), "key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}
