package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/notewell/minutes/internal/logx"
	"github.com/notewell/minutes/internal/metrics"
	"github.com/notewell/minutes/internal/pipeline"
)

const refineTimeoutDetail = "Refinement timed out. Please try with a shorter transcript."

// RefineHandler handles POST /refine.
func RefineHandler(orch *pipeline.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefinementRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		mapping := req.Mapping()
		logx.Log.Info().Int("mappings", len(mapping)).Bool("feedback", strings.TrimSpace(req.Feedback) != "").Msg("refining transcript")

		res, err := orch.Refine(r.Context(), req.Transcript, mapping, req.Feedback)
		metrics.RecordOperation("refine", err == nil)
		if err != nil {
			pipelineError(w, r, err, "Refinement failed", refineTimeoutDetail)
			return
		}
		metrics.ObserveOperationDuration("refine", res.Elapsed)

		writeJSON(w, http.StatusOK, RefinementResponse{
			RefinedTranscript:     res.RefinedTranscript,
			ChangesMade:           formatChanges(req.Transcript, res),
			ProcessingTimeSeconds: roundSeconds(res.Elapsed),
		})
	}
}

// formatChanges renders the change list for the response body. When the text
// comes back byte-equal (modulo surrounding whitespace) the list says so; when
// it changed without a recorded replacement, the generative pass did it.
func formatChanges(original string, res *pipeline.RefinementResult) []string {
	out := make([]string, 0, len(res.Changes)+1)
	for _, ch := range res.Changes {
		out = append(out, fmt.Sprintf("Replaced '%s' with '%s' (%d occurrences)", ch.Placeholder, ch.Replacement, ch.Occurrences))
	}
	if strings.TrimSpace(original) == strings.TrimSpace(res.RefinedTranscript) {
		out = append(out, "No changes were necessary")
	} else if len(out) == 0 {
		out = append(out, "Speaker names updated and grammar adjusted")
	}
	return out
}
