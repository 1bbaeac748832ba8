package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notewell/minutes/internal/audio"
	"github.com/notewell/minutes/internal/config"
	"github.com/notewell/minutes/internal/pipeline"
)

type fakeGen struct{ out string }

func (f *fakeGen) GenerateText(context.Context, string, float64) (string, error) {
	return f.out, nil
}

func (f *fakeGen) GenerateFromAudio(context.Context, string, string, float64) (string, error) {
	return f.out, nil
}

func testHandler(t *testing.T, cfg config.Config, out string) http.Handler {
	t.Helper()
	store, err := audio.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	orch := pipeline.New(&fakeGen{out: out}, pipeline.Settings{
		TranscriptionTemperature: cfg.TranscriptionTemperature,
		SummarizationTemperature: cfg.SummarizationTemperature,
		Timeout:                  cfg.RequestTimeout,
	})
	return New(cfg, orch, store, "test")
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.SetDefaults()
	cfg.GeminiAPIKey = "test-key"
	return cfg
}

func TestLivenessEndpoints(t *testing.T) {
	ts := httptest.NewServer(testHandler(t, testConfig(), ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	var root map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		t.Fatalf("decode root: %v", err)
	}
	if root["status"] != "ok" {
		t.Fatalf("root status: %q", root["status"])
	}

	resp2, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	var health struct {
		Status           string `json:"status"`
		GeminiConfigured bool   `json:"gemini_configured"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" || !health.GeminiConfigured {
		t.Fatalf("health: %+v", health)
	}
}

func TestSummarizeThroughRouter(t *testing.T) {
	ts := httptest.NewServer(testHandler(t, testConfig(), "# Meeting Notes: Sync\n\n## Executive Summary\n- ok\n"))
	defer ts.Close()

	body := `{"text":"` + strings.Repeat("We discussed the release schedule. ", 3) + `","date":"2024-01-15"}`
	resp, err := http.Post(ts.URL+"/summarize", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /summarize: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	var out struct {
		Sections []string `json:"sections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Sections) != 1 || out.Sections[0] != "Executive Summary" {
		t.Fatalf("sections: %v", out.Sections)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := httptest.NewServer(testHandler(t, testConfig(), "## S\n- x\n"))
	defer ts.Close()

	body := `{"text":"` + strings.Repeat("We discussed the release schedule. ", 3) + `"}`
	if _, err := http.Post(ts.URL+"/summarize", "application/json", strings.NewReader(body)); err != nil {
		t.Fatalf("POST /summarize: %v", err)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "minutes_operation_requests_total") {
		t.Fatalf("operation counter missing from exposition")
	}
}

func TestDocsEndpoints(t *testing.T) {
	ts := httptest.NewServer(testHandler(t, testConfig(), ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/openapi.json")
	if err != nil {
		t.Fatalf("GET /openapi.json: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "/transcribe") {
		t.Fatalf("schema missing /transcribe")
	}

	resp2, err := http.Get(ts.URL + "/docs")
	if err != nil {
		t.Fatalf("GET /docs: %v", err)
	}
	if ct := resp2.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected text/html content type, got %s", ct)
	}
}

func TestCORSAllowedOrigins(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"https://example.com"}
	ts := httptest.NewServer(testHandler(t, cfg, ""))
	defer ts.Close()

	req, _ := http.NewRequest("GET", ts.URL+"/", nil)
	req.Header.Set("Origin", "https://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	if ao := resp.Header.Get("Access-Control-Allow-Origin"); ao != "https://example.com" {
		t.Fatalf("expected allowed origin header, got %q", ao)
	}

	req2, _ := http.NewRequest("GET", ts.URL+"/", nil)
	req2.Header.Set("Origin", "https://evil.com")
	resp2, err := http.DefaultClient.Do(req2)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	if ao := resp2.Header.Get("Access-Control-Allow-Origin"); ao != "" {
		t.Fatalf("expected no allowed origin header, got %q", ao)
	}
}
