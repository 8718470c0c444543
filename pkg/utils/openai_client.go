package utils

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIModelClient implements ModelClientInterface using OpenAI chat
// completions for structured output and DALL·E for images.
type OpenAIModelClient struct {
	client     *openai.Client
	textModel  string
	imageModel string
}

func NewOpenAIModelClient(apiKey, textModel, imageModel string) *OpenAIModelClient {
	if textModel == "" {
		textModel = openai.GPT4oMini
	}
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}
	return &OpenAIModelClient{
		client:     openai.NewClient(apiKey),
		textModel:  textModel,
		imageModel: imageModel,
	}
}

func (c *OpenAIModelClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	const op = "generate_json"

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.textModel,
		Temperature: 0.4,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyCallError(op, err)
	}
	if len(resp.Choices) == 0 {
		return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("no completion choices"))
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	if content == "" {
		return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("empty completion"))
	}
	if !json.Valid([]byte(content)) {
		return "", NewModelError(ModelErrorSchemaMismatch, op, fmt.Errorf("completion is not valid JSON"))
	}
	return content, nil
}

func (c *OpenAIModelClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	const op = "generate_image"

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", classifyCallError(op, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", NewModelError(ModelErrorRefusal, op, fmt.Errorf("completion carried no image payload"))
	}
	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}

// Close satisfies ModelClientInterface; the OpenAI client holds no connection state.
func (c *OpenAIModelClient) Close() error { return nil }
