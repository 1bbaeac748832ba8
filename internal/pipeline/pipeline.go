package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/notewell/minutes/internal/filedate"
	"github.com/notewell/minutes/internal/logx"
	"github.com/notewell/minutes/internal/markdown"
	"github.com/notewell/minutes/internal/prompts"
	"github.com/notewell/minutes/internal/transcript"
)

var (
	// ErrInvalidInput marks requests rejected before any model call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModel marks a failed model call, including timeouts.
	ErrModel = errors.New("model request failed")
	// ErrEmptyResult marks a model call that succeeded but produced no usable content.
	ErrEmptyResult = errors.New("model returned empty content")
)

// InputError rejects a request before any model call. Detail is returned to
// the caller verbatim.
type InputError struct {
	Detail string
	Err    error
}

func (e *InputError) Error() string { return e.Detail }

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// Generator is the external model collaborator. Both methods return the
// model's trimmed text output, which may be empty; an error is returned only
// when the call itself fails.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, temperature float64) (string, error)
	GenerateFromAudio(ctx context.Context, audioPath, prompt string, temperature float64) (string, error)
}

// Settings carries the knobs the pipeline reads; constructed once at startup.
type Settings struct {
	TranscriptionTemperature float64
	SummarizationTemperature float64
	Timeout                  time.Duration
}

// Orchestrator sequences prompt building, the external model call, and
// deterministic post-processing for the three operations. It holds no
// per-request state; concurrent calls do not interfere.
type Orchestrator struct {
	gen Generator
	cfg Settings
}

func New(gen Generator, cfg Settings) *Orchestrator {
	return &Orchestrator{gen: gen, cfg: cfg}
}

// TranscriptionResult is the outcome of one Transcribe call.
type TranscriptionResult struct {
	Transcript   string
	DetectedDate string
	Speakers     []string
	Elapsed      time.Duration
}

// RefinementResult is the outcome of one Refine call.
type RefinementResult struct {
	RefinedTranscript string
	Changes           []transcript.Change
	Elapsed           time.Duration
}

// SummaryResult is the outcome of one Summarize call. Sections always mirrors
// the heading structure of Markdown.
type SummaryResult struct {
	Markdown string
	Sections []string
	Elapsed  time.Duration
}

// Transcribe sends the saved audio file to the model with the fixed
// transcription prompt, then derives the speaker list from the returned text
// and a meeting date from the original filename.
func (o *Orchestrator) Transcribe(ctx context.Context, audioPath, filename string) (*TranscriptionResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	text, err := o.generate(ctx, "audio", func(ctx context.Context) (string, error) {
		return o.gen.GenerateFromAudio(ctx, audioPath, prompts.Transcription, o.cfg.TranscriptionTemperature)
	})
	if err != nil {
		return nil, err
	}

	res := &TranscriptionResult{
		Transcript: text,
		Speakers:   transcript.Speakers(text),
		Elapsed:    time.Since(start),
	}
	if d, ok := filedate.Detect(filename); ok {
		res.DetectedDate = d
	}
	return res, nil
}

// Refine replaces speaker placeholders deterministically. A model call is
// issued only when feedback is present, to apply corrections the mapper cannot
// express; its output is used only if the deterministic replacements survived
// it, otherwise the deterministic result stands.
func (o *Orchestrator) Refine(ctx context.Context, text string, mapping transcript.SpeakerMapping, feedback string) (*RefinementResult, error) {
	start := time.Now()
	if utf8.RuneCountInString(text) < 10 {
		return nil, &InputError{Detail: "Transcript must be at least 10 characters long"}
	}
	if len(mapping) == 0 {
		return nil, &InputError{Detail: "Speaker mapping cannot be empty"}
	}

	refined, changes, err := transcript.Refine(text, mapping)
	if err != nil {
		return nil, &InputError{Detail: "Speaker mapping keys and values cannot be empty", Err: err}
	}

	if strings.TrimSpace(feedback) != "" {
		out, err := o.refineWithFeedback(ctx, refined, mapping, feedback, changes)
		if err != nil {
			return nil, err
		}
		if out != "" {
			refined = out
		}
	}

	return &RefinementResult{
		RefinedTranscript: refined,
		Changes:           changes,
		Elapsed:           time.Since(start),
	}, nil
}

// refineWithFeedback runs the advisory model pass over the already-mapped
// text. It returns "" when the deterministic result should be kept: the model
// output is discarded if the call failed for a reason other than the caller's
// deadline, or if it reverted any replacement. Only a timeout or cancellation
// aborts the whole operation.
func (o *Orchestrator) refineWithFeedback(ctx context.Context, refined string, mapping transcript.SpeakerMapping, feedback string, changes []transcript.Change) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	out, err := o.generate(ctx, "text", func(ctx context.Context) (string, error) {
		return o.gen.GenerateText(ctx, prompts.Refinement(mapping, feedback, refined), o.cfg.TranscriptionTemperature)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		logx.Log.Warn().Err(err).Msg("feedback pass failed; keeping deterministic result")
		return "", nil
	}
	if !replacementsIntact(out, changes) {
		logx.Log.Warn().Msg("feedback pass reverted speaker replacements; keeping deterministic result")
		return "", nil
	}
	return out, nil
}

// replacementsIntact reports whether each prior replacement survived the model
// pass: the resolved name still present, the placeholder not reintroduced as a
// bracketed label.
func replacementsIntact(text string, changes []transcript.Change) bool {
	for _, ch := range changes {
		if strings.Contains(text, "["+ch.Placeholder+"]") {
			return false
		}
		if !strings.Contains(text, ch.Replacement) {
			return false
		}
	}
	return true
}

var dateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
}

// Summarize builds the summary prompt around the transcript, calls the model
// once, and derives the section list from the generated Markdown. An empty
// date defaults to today; a blank title becomes "Meeting".
func (o *Orchestrator) Summarize(ctx context.Context, text, date, title string) (*SummaryResult, error) {
	start := time.Now()
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 50 {
		return nil, &InputError{Detail: "Transcript too short for meaningful summary (minimum 50 characters)"}
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if !validDate(date) {
		return nil, &InputError{Detail: "Date must be in a valid format (e.g., YYYY-MM-DD)"}
	}
	if strings.TrimSpace(title) == "" {
		title = "Meeting"
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	md, err := o.generate(ctx, "text", func(ctx context.Context) (string, error) {
		return o.gen.GenerateText(ctx, prompts.Summary(date, title, text), o.cfg.SummarizationTemperature)
	})
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		Markdown: md,
		Sections: markdown.Sections(md),
		Elapsed:  time.Since(start),
	}, nil
}

func validDate(date string) bool {
	for _, re := range dateFormats {
		if re.MatchString(date) {
			return true
		}
	}
	return false
}
