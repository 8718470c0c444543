package utils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModelClient implements ModelClientInterface using Google's Gemini models.
type GeminiModelClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiModelClient(apiKey, textModel, imageModel string) (*GeminiModelClient, error) {
	if textModel == "" {
		textModel = "gemini-2.0-flash"
	}
	if imageModel == "" {
		imageModel = "gemini-2.0-flash-preview-image-generation"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModelClient{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

// GenerateJSON sends the prompt in JSON response mode and returns the raw
// payload. Empty or refused completions surface as ModelError{Refusal},
// non-JSON payloads as ModelError{SchemaMismatch}.
func (c *GeminiModelClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	const op = "generate_json"

	m := c.client.GenerativeModel(c.textModel)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)
	m.SetTopP(0.5)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyCallError(op, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("no response candidates"))
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	content := cleanJSONResponse(text.String())
	if content == "" {
		return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("empty completion"))
	}
	if !json.Valid([]byte(content)) {
		return "", NewModelError(ModelErrorSchemaMismatch, op, fmt.Errorf("completion is not valid JSON"))
	}
	return content, nil
}

// GenerateImage calls the image-generation model and returns the first image
// part as a data URI. A completion without an image payload is a
// ModelError{Refusal}, never an empty-string success.
func (c *GeminiModelClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	const op = "generate_image"

	m := c.client.GenerativeModel(c.imageModel)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyCallError(op, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("no response candidates"))
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			mime := blob.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(blob.Data)), nil
		}
	}
	return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("completion carried no image payload"))
}

func (c *GeminiModelClient) Close() error {
	return c.client.Close()
}
