package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/notewell/minutes/internal/api"
	"github.com/notewell/minutes/internal/audio"
	"github.com/notewell/minutes/internal/config"
	"github.com/notewell/minutes/internal/metrics"
	"github.com/notewell/minutes/internal/pipeline"
)

// New constructs the HTTP handler for the service.
func New(cfg config.Config, orch *pipeline.Orchestrator, store *audio.Store, version string) http.Handler {
	r := chi.NewRouter()
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}))
	}
	for _, m := range api.MiddlewareChain() {
		r.Use(m)
	}

	preg := prometheus.NewRegistry()
	metrics.Register(preg)

	r.Get("/", api.HealthHandler())
	r.Get("/health", api.DetailedHealthHandler(version, cfg.Environment, cfg.GeminiAPIKey != ""))
	r.Post("/transcribe", api.TranscribeHandler(orch, store, cfg))
	r.Post("/refine", api.RefineHandler(orch))
	r.Post("/summarize", api.SummarizeHandler(orch))
	r.Get("/docs", api.SwaggerHandler())
	r.Get("/openapi.json", api.OpenAPIHandler())
	r.Handle("/metrics", promhttp.HandlerFor(preg, promhttp.HandlerOpts{}))

	return r
}
