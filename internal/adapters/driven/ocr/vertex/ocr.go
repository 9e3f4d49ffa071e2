// Package vertex implements OCR through Gemini multimodal models on
// Vertex AI. Useful where a project already has Vertex access and wants
// layout-aware transcription of difficult scans.
package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

// Defaults applied when the settings leave model or location empty.
const (
	DefaultModel    = "gemini-1.5-flash"
	DefaultLocation = "us-central1"
)

// recognitionPrompt instructs the model to transcribe rather than describe.
const recognitionPrompt = `Transcribe all text visible in this page image.
Return only the transcribed text, preserving the reading order.
Return an empty response when the page contains no text.`

// Config holds Vertex AI settings.
type Config struct {
	Project  string
	Location string
	Model    string

	// Prompt overrides the default transcription instruction.
	Prompt string
}

// Service recognises text by prompting a Gemini model with the page image.
type Service struct {
	client *genai.Client
	model  *genai.GenerativeModel
	prompt string
}

// NewService creates a Vertex OCR service.
// Credentials are resolved from the environment (application default
// credentials), as for any Vertex client.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("vertex: project is required")
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Prompt == "" {
		cfg.Prompt = recognitionPrompt
	}

	client, err := genai.NewClient(ctx, cfg.Project, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("create vertex client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.GenerationConfig = genai.GenerationConfig{
		// Transcription wants determinism, not creativity.
		Temperature: genai.Ptr[float32](0.0),
	}

	return &Service{client: client, model: model, prompt: cfg.Prompt}, nil
}

// Recognise extracts text from the page image.
func (s *Service) Recognise(ctx context.Context, image []byte) (string, error) {
	resp, err := s.model.GenerateContent(ctx,
		genai.ImageData("png", image),
		genai.Text(s.prompt),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrOCRProvider, err.Error())
	}
	return extractText(resp), nil
}

// Provider identifies the backing provider.
func (s *Service) Provider() domain.OCRProvider {
	return domain.OCRProviderVertex
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}

// extractText concatenates the text parts of the first candidate.
// Models occasionally fence their output; the fences are stripped.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(out.String())
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
