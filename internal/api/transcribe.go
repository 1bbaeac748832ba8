package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/notewell/minutes/internal/audio"
	"github.com/notewell/minutes/internal/config"
	"github.com/notewell/minutes/internal/logx"
	"github.com/notewell/minutes/internal/metrics"
	"github.com/notewell/minutes/internal/pipeline"
)

const transcribeTimeoutDetail = "Transcription timed out. Please try with a shorter audio file."

// TranscribeHandler handles POST /transcribe. The uploaded audio is staged in
// the store for the duration of the model call and removed afterwards.
func TranscribeHandler(orch *pipeline.Orchestrator, store *audio.Store, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, `Audio file is required (multipart form field "file")`)
			return
		}
		defer func() { _ = file.Close() }()

		filename := header.Filename
		if filename == "" {
			filename = "audio_file"
		}
		logx.Log.Info().Str("filename", filename).Msg("received file for transcription")

		if !audio.ExtAllowed(filename, cfg.AllowedAudioExts) {
			writeError(w, r, http.StatusBadRequest, "Invalid file format. Allowed formats: "+strings.Join(cfg.AllowedAudioExts, ", "))
			return
		}

		content, err := io.ReadAll(io.LimitReader(file, cfg.MaxFileSizeBytes()+1))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		if int64(len(content)) > cfg.MaxFileSizeBytes() {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size: %d MB", cfg.MaxFileSizeMB))
			return
		}
		if len(content) == 0 {
			writeError(w, r, http.StatusBadRequest, "Empty file uploaded")
			return
		}
		metrics.ObserveAudioUpload(int64(len(content)))

		path, err := store.Save(content, strings.ToLower(filepath.Ext(filename)))
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "Transcription failed: "+err.Error())
			return
		}
		defer func() {
			if err := store.Remove(path); err != nil {
				logx.Log.Warn().Err(err).Str("path", path).Msg("remove temp audio")
			}
		}()

		res, err := orch.Transcribe(r.Context(), path, filename)
		metrics.RecordOperation("transcribe", err == nil)
		if err != nil {
			pipelineError(w, r, err, "Transcription failed", transcribeTimeoutDetail)
			return
		}
		metrics.ObserveOperationDuration("transcribe", res.Elapsed)

		speakers := res.Speakers
		if speakers == nil {
			speakers = []string{}
		}
		writeJSON(w, http.StatusOK, TranscriptionResponse{
			Filename:              filename,
			DetectedDate:          res.DetectedDate,
			Transcript:            res.Transcript,
			SpeakersIdentified:    speakers,
			ProcessingTimeSeconds: roundSeconds(res.Elapsed),
		})
	}
}
