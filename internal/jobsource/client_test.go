package jobsource

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const vacancyJSON = `{
  "id": "123",
  "name": "Senior Go Developer",
  "description": "<p><strong>We build</strong> payment services.</p><p>Requirements:</p><ul><li>Go</li><li>Kubernetes<br>and Helm</li></ul>",
  "key_skills": [{"name": "Go"}, {"name": "PostgreSQL"}],
  "experience": {"id": "between3And6", "name": "3–6 years"},
  "employer": {"name": "Acme"},
  "alternate_url": "https://hh.ru/vacancy/123"
}`

func newTestServer(t *testing.T, gzipped bool) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vacancies/123" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		if !gzipped {
			_, _ = w.Write([]byte(vacancyJSON))
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(vacancyJSON))
		_ = gz.Close()
	}))
}

func TestVacancy(t *testing.T) {
	for _, gzipped := range []bool{false, true} {
		srv := newTestServer(t, gzipped)

		c := New(zap.NewNop(), "secret")
		c.APIURL = srv.URL

		v, err := c.Vacancy(context.Background(), "123")
		srv.Close()
		if err != nil {
			t.Fatalf("gzip=%v: unexpected error: %v", gzipped, err)
		}
		if v.Name != "Senior Go Developer" || len(v.KeySkills) != 2 {
			t.Fatalf("gzip=%v: unexpected vacancy: %+v", gzipped, v)
		}
	}
}

func TestVacancyNotFound(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()

	c := New(nil, "secret")
	c.APIURL = srv.URL

	_, err := c.Vacancy(context.Background(), "999")
	if !errors.Is(err, ErrVacancyNotFound) {
		t.Fatalf("expected ErrVacancyNotFound, got %v", err)
	}

	if _, err := c.Vacancy(context.Background(), " "); err == nil {
		t.Fatalf("expected error for an empty id")
	}
}

func TestVacancyText(t *testing.T) {
	srv := newTestServer(t, false)
	defer srv.Close()

	c := New(nil, "secret")
	c.APIURL = srv.URL

	v, err := c.Vacancy(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := v.Text()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Senior Go Developer\n\nCompany: Acme\n\n",
		"We build payment services.\nRequirements:\n- Go\n- Kubernetes\nand Helm",
		"Requirements: 3-6 years of experience",
		"Key skills: Go, PostgreSQL",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text does not contain %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "<") {
		t.Fatalf("html left in text:\n%s", text)
	}
}
