package gemini

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/notewell/minutes/internal/logx"
)

const filePollInterval = 2 * time.Second

var mimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
}

// Client calls the Gemini API for text and audio generation.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// New creates a client bound to one model. maxTokens caps the output length of
// every generation call.
func New(ctx context.Context, apiKey, model string, maxTokens int) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &Client{client: c, model: model, maxTokens: maxTokens}, nil
}

// GenerateText sends a text-only prompt and returns the model's output,
// trimmed. An empty return with a nil error means the model produced no
// usable content; the call itself succeeded.
func (c *Client) GenerateText(ctx context.Context, prompt string, temperature float64) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genConfig(temperature))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(result), nil
}

// GenerateFromAudio uploads the audio file, waits for it to become active,
// then prompts the model with the file and the prompt text. The uploaded file
// is deleted afterwards regardless of outcome.
func (c *Client) GenerateFromAudio(ctx context.Context, audioPath, prompt string, temperature float64) (string, error) {
	f, err := c.client.Files.UploadFromPath(ctx, audioPath, &genai.UploadFileConfig{
		MIMEType: mimeForPath(audioPath),
	})
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	logx.Log.Info().Str("file", f.Name).Msg("audio uploaded for transcription")
	defer func() {
		if _, err := c.client.Files.Delete(context.WithoutCancel(ctx), f.Name, nil); err != nil {
			logx.Log.Warn().Err(err).Str("file", f.Name).Msg("failed to delete uploaded audio")
		}
	}()

	for f.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(filePollInterval):
		}
		if f, err = c.client.Files.Get(ctx, f.Name, nil); err != nil {
			return "", fmt.Errorf("poll uploaded audio: %w", err)
		}
	}
	if f.State == genai.FileStateFailed {
		return "", fmt.Errorf("audio file processing failed")
	}

	parts := []*genai.Part{
		genai.NewPartFromURI(f.URI, f.MIMEType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.genConfig(temperature))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(result), nil
}

func (c *Client) genConfig(temperature float64) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(c.maxTokens),
	}
}

func extractText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func mimeForPath(path string) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "application/octet-stream"
}
