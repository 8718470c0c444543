package ai_fx

import (
	"context"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"voyago/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(ProvideModelClient),
	fx.Invoke(RegisterModelClientShutdown),
)

// ModelConfig holds configuration for the generative model client.
type ModelConfig struct {
	Provider   string
	APIKey     string
	TextModel  string
	ImageModel string
}

// ProvideModelClient creates the model client selected by environment variables.
func ProvideModelClient() (utils.ModelClientInterface, error) {
	config := getModelConfig()

	log.Printf("Initializing %s model client (text: %s, image: %s)", config.Provider, config.TextModel, config.ImageModel)

	switch strings.ToLower(config.Provider) {
	case "openai":
		return utils.NewOpenAIModelClient(config.APIKey, config.TextModel, config.ImageModel), nil
	case "gemini":
		return utils.NewGeminiModelClient(config.APIKey, config.TextModel, config.ImageModel)
	default:
		return nil, utils.ErrUnsupportedProvider
	}
}

func RegisterModelClientShutdown(lc fx.Lifecycle, client utils.ModelClientInterface) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}

func getModelConfig() ModelConfig {
	provider := getEnvWithDefault("MODEL_PROVIDER", "gemini")

	var config ModelConfig
	config.Provider = provider

	switch strings.ToLower(provider) {
	case "openai":
		config.APIKey = os.Getenv("OPENAI_API_KEY")
		config.TextModel = os.Getenv("OPENAI_TEXT_MODEL")
		config.ImageModel = os.Getenv("OPENAI_IMAGE_MODEL")
		if config.APIKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using the OpenAI provider")
		}
	case "gemini":
		config.APIKey = os.Getenv("GEMINI_API_KEY")
		config.TextModel = os.Getenv("GEMINI_TEXT_MODEL")
		config.ImageModel = os.Getenv("GEMINI_IMAGE_MODEL")
		if config.APIKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using the Gemini provider")
		}
	}

	return config
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
