package api

import (
	"net/http"
	"time"
)

// ServiceName appears in the detailed health payload and the OpenAPI document.
const ServiceName = "minutes"

// HealthHandler handles GET /, the liveness probe polled by load balancers.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// DetailedHealthHandler handles GET /health with service metadata.
func DetailedHealthHandler(version, environment string, geminiConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthDetail{
			Status:           "healthy",
			Service:          ServiceName,
			Version:          version,
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			Environment:      environment,
			GeminiConfigured: geminiConfigured,
		})
	}
}
