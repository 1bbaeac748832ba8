package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notewell/minutes/internal/logx"
	"github.com/notewell/minutes/internal/metrics"
)

// retryBackoff is the pause before the single retry of a transient failure.
var retryBackoff = 2 * time.Second

// generate runs one model call, retrying once after a transient failure. A
// successful call with blank output is ErrEmptyResult; other failures are
// wrapped in ErrModel with the cause preserved for errors.Is. kind labels the
// call in metrics ("text" or "audio").
func (o *Orchestrator) generate(ctx context.Context, kind string, call func(context.Context) (string, error)) (string, error) {
	text, err := call(ctx)
	metrics.RecordModelCall(kind, err == nil)
	if err != nil && transient(err) {
		logx.Log.Warn().Err(err).Msg("transient model error; retrying once")
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrModel, ctx.Err())
		case <-time.After(retryBackoff):
		}
		text, err = call(ctx)
		metrics.RecordModelCall(kind, err == nil)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrModel, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResult
	}
	return text, nil
}

// transient reports whether err looks like a retriable network or rate-limit
// failure. Deadline and cancellation are never retried; neither are
// content-shaped failures.
func transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := err.Error()
	for _, s := range []string{"429", "quota", "RESOURCE_EXHAUSTED", "UNAVAILABLE", "connection refused", "connection reset"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
