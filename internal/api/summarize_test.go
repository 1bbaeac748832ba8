package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

const summaryMarkdown = `# Meeting Notes: Planning

**Date:** 2024-01-15

## Executive Summary

- Shipped the beta.

## Action Items

| Item | Owner | Due Date |
|------|-------|----------|

## Key Decisions

- Keep the beta flag.
`

func summarizeBody(text string) string {
	b, _ := json.Marshal(map[string]string{"text": text, "date": "2024-01-15", "title": "Planning"})
	return string(b)
}

func longText() string {
	return strings.Repeat("The team discussed the quarterly roadmap. ", 3)
}

func TestSummarizeSuccess(t *testing.T) {
	gen := &fakeGen{textFn: func(_ context.Context, prompt string, _ float64) (string, error) {
		if !strings.Contains(prompt, "MEETING TITLE: Planning") {
			return "", context.Canceled
		}
		return summaryMarkdown, nil
	}}
	h := SummarizeHandler(newOrchestrator(gen))

	rr := postJSON(t, h, "/summarize", summarizeBody(longText()))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp SummaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Markdown != summaryMarkdown {
		t.Fatalf("markdown: %q", resp.Markdown)
	}
	want := []string{"Executive Summary", "Action Items", "Key Decisions"}
	if len(resp.Sections) != len(want) {
		t.Fatalf("sections: %v", resp.Sections)
	}
	for i, w := range want {
		if resp.Sections[i] != w {
			t.Fatalf("section %d: %q", i, resp.Sections[i])
		}
	}
}

func TestSummarizeShortText(t *testing.T) {
	h := SummarizeHandler(newOrchestrator(&fakeGen{}))

	rr := postJSON(t, h, "/summarize", summarizeBody("too short"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Detail != "Transcript too short for meaningful summary (minimum 50 characters)" {
		t.Fatalf("detail: %q", resp.Detail)
	}
}

func TestSummarizeBadDate(t *testing.T) {
	h := SummarizeHandler(newOrchestrator(&fakeGen{}))

	body := `{"text":"` + longText() + `","date":"Jan 5 2024"}`
	rr := postJSON(t, h, "/summarize", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Detail != "Date must be in a valid format (e.g., YYYY-MM-DD)" {
		t.Fatalf("detail: %q", resp.Detail)
	}
}

func TestSummarizeEmptyModelOutput(t *testing.T) {
	gen := &fakeGen{textFn: func(context.Context, string, float64) (string, error) {
		return "", nil
	}}
	h := SummarizeHandler(newOrchestrator(gen))

	rr := postJSON(t, h, "/summarize", summarizeBody(longText()))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.Detail, "Summarization failed:") || !strings.Contains(resp.Detail, "empty") {
		t.Fatalf("detail: %q", resp.Detail)
	}
}

func TestSummarizeNoSections(t *testing.T) {
	gen := &fakeGen{textFn: func(context.Context, string, float64) (string, error) {
		return "Just a paragraph, no headings.", nil
	}}
	h := SummarizeHandler(newOrchestrator(gen))

	rr := postJSON(t, h, "/summarize", summarizeBody(longText()))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"sections":[]`) {
		t.Fatalf("sections should encode as []: %s", rr.Body.String())
	}
}
