package api

import (
	"math"
	"net/http"
	"time"

	"github.com/notewell/minutes/internal/metrics"
	"github.com/notewell/minutes/internal/pipeline"
)

const summarizeTimeoutDetail = "Summarization timed out. Please try with a shorter transcript."

// SummarizeHandler handles POST /summarize.
func SummarizeHandler(orch *pipeline.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SummaryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		res, err := orch.Summarize(r.Context(), req.Text, req.Date, req.Title)
		metrics.RecordOperation("summarize", err == nil)
		if err != nil {
			pipelineError(w, r, err, "Summarization failed", summarizeTimeoutDetail)
			return
		}
		metrics.ObserveOperationDuration("summarize", res.Elapsed)

		sections := res.Sections
		if sections == nil {
			sections = []string{}
		}
		writeJSON(w, http.StatusOK, SummaryResponse{
			Markdown:              res.Markdown,
			Sections:              sections,
			ProcessingTimeSeconds: roundSeconds(res.Elapsed),
		})
	}
}

// roundSeconds reports elapsed wall-clock time rounded to two decimals, the
// precision promised by processing_time_seconds.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
