package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notewell/minutes/internal/logx"
	"github.com/notewell/minutes/internal/pipeline"
)

const genericErrorDetail = "An unexpected error occurred. Please try again later."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Log.Error().Err(err).Msg("encode response")
	}
}

// writeError renders the error envelope shared by every endpoint.
func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	logx.Log.Warn().Int("status", status).Str("path", r.URL.Path).Msg(detail)
	writeJSON(w, status, ErrorResponse{Error: true, StatusCode: status, Detail: detail, Path: r.URL.Path})
}

// pipelineError maps an orchestrator failure onto the HTTP contract.
// failedPrefix opens the 500 detail ("Transcription failed: ..."); timeoutDetail
// is the 408 message.
func pipelineError(w http.ResponseWriter, r *http.Request, err error, failedPrefix, timeoutDetail string) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusRequestTimeout, timeoutDetail)
	default:
		writeError(w, r, http.StatusInternalServerError, failedPrefix+": "+err.Error())
	}
}
