package api

import (
	"encoding/json"
	"net/http"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/notewell/minutes/internal/transcript"
)

// TranscriptionResponse is the body of a successful POST /transcribe.
type TranscriptionResponse struct {
	Filename              string   `json:"filename"`
	DetectedDate          string   `json:"detected_date,omitempty"`
	Transcript            string   `json:"transcript"`
	SpeakersIdentified    []string `json:"speakers_identified"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

// RefinementRequest is the body of POST /refine. speaker_mapping keeps the
// key order of the request body; replacements are applied in that order.
type RefinementRequest struct {
	Transcript     string                                 `json:"transcript"`
	SpeakerMapping *orderedmap.OrderedMap[string, string] `json:"speaker_mapping"`
	Feedback       string                                 `json:"feedback"`
}

// Mapping converts speaker_mapping into the ordered form the refinement
// pipeline consumes.
func (r *RefinementRequest) Mapping() transcript.SpeakerMapping {
	if r.SpeakerMapping == nil {
		return nil
	}
	mapping := make(transcript.SpeakerMapping, 0, r.SpeakerMapping.Len())
	for pair := r.SpeakerMapping.Oldest(); pair != nil; pair = pair.Next() {
		mapping = append(mapping, transcript.MappingEntry{Placeholder: pair.Key, Name: pair.Value})
	}
	return mapping
}

// RefinementResponse is the body of a successful POST /refine.
type RefinementResponse struct {
	RefinedTranscript     string   `json:"refined_transcript"`
	ChangesMade           []string `json:"changes_made"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

// SummaryRequest is the body of POST /summarize. date may be empty (defaults
// to today) and title may be empty (defaults to "Meeting").
type SummaryRequest struct {
	Text  string `json:"text"`
	Date  string `json:"date"`
	Title string `json:"title"`
}

// SummaryResponse is the body of a successful POST /summarize.
type SummaryResponse struct {
	Markdown              string   `json:"markdown"`
	Sections              []string `json:"sections"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	Path       string `json:"path"`
}

// HealthDetail is the body of GET /health.
type HealthDetail struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Version          string `json:"version"`
	Timestamp        string `json:"timestamp"`
	Environment      string `json:"environment"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
