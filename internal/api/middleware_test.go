package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func wrapChain(h http.Handler) http.Handler {
	chain := MiddlewareChain()
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func TestRequestIDMiddleware(t *testing.T) {
	var captured string
	h := wrapChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = chiMiddleware.GetReqID(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if captured == "" {
		t.Fatalf("missing request id")
	}
}

func TestRecovererWritesEnvelope(t *testing.T) {
	h := wrapChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/refine", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Error || resp.StatusCode != 500 || resp.Detail != genericErrorDetail || resp.Path != "/refine" {
		t.Fatalf("envelope: %+v", resp)
	}
}
