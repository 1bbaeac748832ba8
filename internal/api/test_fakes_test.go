package api

import (
	"context"
	"time"

	"github.com/notewell/minutes/internal/pipeline"
)

type fakeGen struct {
	textFn  func(ctx context.Context, prompt string, temperature float64) (string, error)
	audioFn func(ctx context.Context, audioPath, prompt string, temperature float64) (string, error)
}

func (f *fakeGen) GenerateText(ctx context.Context, prompt string, temperature float64) (string, error) {
	if f.textFn == nil {
		return "", nil
	}
	return f.textFn(ctx, prompt, temperature)
}

func (f *fakeGen) GenerateFromAudio(ctx context.Context, audioPath, prompt string, temperature float64) (string, error) {
	if f.audioFn == nil {
		return "", nil
	}
	return f.audioFn(ctx, audioPath, prompt, temperature)
}

func newOrchestrator(gen pipeline.Generator) *pipeline.Orchestrator {
	return pipeline.New(gen, pipeline.Settings{
		TranscriptionTemperature: 0.1,
		SummarizationTemperature: 0.3,
		Timeout:                  30 * time.Second,
	})
}
